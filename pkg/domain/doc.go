/*
Package domain contains the core types shared by the chart invocation adapter,
the call builder and the display sinks.

It is kept free of I/O. A ChartInvocation describes a single call into an external
JavaScript renderer: which renderer, which output container, and the ordered
arguments that follow the container.

# Key Entities

  - RendererName: one of the fixed set of AMD modules the frontend resolves by name.
  - ContainerRef: a JavaScript expression naming the output element of a notebook cell.
  - RenderConfig: an opaque mapping forwarded to the renderer untouched.
  - ChartInvocation: renderer + container + positional arguments, in signature order.
*/
package domain
