/*
Package resilience provides the circuit breaker that guards content loads.

A window's content comes from a collaborator the engine does not control.
When that collaborator keeps failing, the breaker opens and loads fail fast
so the content dispatcher can go straight to its fallback loader.

# Usage

	breaker := resilience.New("content", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	panel, err := resilience.Call(breaker, func() (content.Panel, error) {
		return loader.Load(ctx, id)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
