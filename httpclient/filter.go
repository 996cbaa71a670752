package httpclient

// RequestFilter inspects or modifies a request before its entity is converted and the
// request is sent. Returning an error aborts the request.
type RequestFilter interface {
	FilterRequest(request *Request) error
}

// ResponseFilter inspects or modifies a response after its body has been read.
// Returning an error is returned from Client.Do along with the response.
type ResponseFilter interface {
	FilterResponse(response *Response) error
}

// RequestFilterFunc adapts a function to RequestFilter.
type RequestFilterFunc func(request *Request) error

func (filter RequestFilterFunc) FilterRequest(request *Request) error {
	return filter(request)
}

// ResponseFilterFunc adapts a function to ResponseFilter.
type ResponseFilterFunc func(response *Response) error

func (filter ResponseFilterFunc) FilterResponse(response *Response) error {
	return filter(response)
}
