/*
Package httpclient sends entities over HTTP using a converter.Manager.

A Factory holds one Manager and the request / response filters shared by every Client it
creates. Client.Do converts the request entity before any network I/O, so a payload no
writer can convert never leaves the process. Responses keep their raw bytes and convert
them on demand:

	factory, err := httpclient.NewFactory(cfg, bundled.NewManager())
	if err != nil {
		return err
	}

	response, err := factory.NewClient().Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/forms",
		Entity: entitytypes.NewFormData().Add("a", "1"),
	})
	if err != nil {
		return err
	}

	form, err := httpclient.ReadEntity[*entitytypes.FormData](response)
*/
package httpclient
