package provider

// Middleware wraps a request/response provider, usually to log, trace or
// count the calls that pass through it.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain folds mws into a single Middleware whose first element sees a call
// first and its result last: Chain(a, b)(p) behaves as a(b(p)). Nil entries
// are skipped, so optional layers can be passed unconditionally.
func Chain[I, O any](mws ...Middleware[I, O]) Middleware[I, O] {
	return func(p RequestResponse[I, O]) RequestResponse[I, O] {
		for i := range mws {
			if mw := mws[len(mws)-1-i]; mw != nil {
				p = mw(p)
			}
		}
		return p
	}
}
