// Package rest provides JSON request/response helpers on top of httpclient.
//
//	client, _ := rest.New(httpclient.Config{
//	    BaseURL: "https://api.openai.com/v1",
//	    Auth:    httpclient.BearerAuth(key),
//	})
//
//	models, err := rest.Get[ModelList](ctx, client, "/models")
//	resp, err := rest.Post[ChatResponse](ctx, client, "/chat/completions", body)
package rest
