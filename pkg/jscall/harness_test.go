package jscall_test

import (
	"encoding/json"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/latticenb/pkg/jscall"
)

// fakeFrontend stands in for the notebook: `element` is the cell output and
// `require` resolves every module to a recorder.
const fakeFrontend = `
var calls = [];
var element = { get: function (i) { return "CONTAINER"; } };
function require(names, cb) {
	var name = names[0];
	cb(function () {
		calls.push({ renderer: name, args: Array.prototype.slice.call(arguments) });
	});
}
`

type recordedCall struct {
	Renderer string `json:"renderer"`
	Args     []any  `json:"args"`
}

func execute(t *testing.T, s jscall.Script) []recordedCall {
	t.Helper()
	vm := goja.New()
	_, err := vm.RunString(fakeFrontend)
	require.NoError(t, err)
	_, err = vm.RunString(s.String())
	require.NoError(t, err, "payload:\n%s", s)

	out, err := vm.RunString("JSON.stringify(calls)")
	require.NoError(t, err)

	var calls []recordedCall
	require.NoError(t, json.Unmarshal([]byte(out.String()), &calls))
	return calls
}
