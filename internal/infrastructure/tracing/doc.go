/*
Package tracing provides lightweight request tracing for the desktop server.

Every HTTP request, including the long-lived /stream connection, gets a span.
Finished spans go through a buffered collector and are written to the log,
so a slow command can be followed from the request log to the engine logs
by trace id.

# Usage

	tracer := tracing.New("desktop", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "session.restore")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

Traces use HTTP headers for propagation:
  - X-Trace-ID: identifier for the whole request flow
  - X-Span-ID: identifier for the current operation
*/
package tracing
