/*
Package jscall turns a domain.ChartInvocation into the JavaScript payload a notebook
frontend executes.

Every argument goes through exactly one encoder: JSON values through encoding/json,
string literals through Quote. Nothing is interpolated by hand, so file paths with
quotes or backslashes cannot break the generated call.

The payload has a fixed shape:

	(function(element){
	    require(['lattice_plot'], function(lattice_plot) {
	        lattice_plot(element.get(0), {"x":[1,2,3]}, 'bar', {});
	    });
	})(element);

The renderer modules themselves are defined by the scripts returned from Definitions.
*/
package jscall
