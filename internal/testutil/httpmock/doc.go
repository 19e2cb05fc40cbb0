// Package httpmock provides gomock mocks of net/http interfaces.
package httpmock

//go:generate go tool mockgen -destination=handler.go -package=httpmock -mock_names=Handler=MockHandler net/http Handler
//go:generate go tool mockgen -destination=response_writer.go -package=httpmock -mock_names=ResponseWriter=MockResponseWriter net/http ResponseWriter
