// Package middleware adapts content negotiation to net/http.
//
// The middleware parses the Accept, Accept-Charset, Accept-Encoding and
// Accept-Language request headers once per request and stores the resulting
// [Negotiators] in the request context:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
//		n, _ := middleware.FromContext(r.Context())
//		if _, ok := n.ContentType(w, "application/json", "text/html"); !ok {
//			middleware.NotAcceptable(w)
//			return
//		}
//		// write the body in the selected format
//	})
//	http.ListenAndServe(":8080", middleware.Handler(mux, nil))
package middleware
