/*
Package shopsdk is a Go client for the storefront API, and the home of the
JSON types the server writes.

# Authentication flow

An account is created in four steps. The one-time code arrives out of band
(by email in production):

	client := shopsdk.NewClient("https://shop.example.com")

	_, err := client.SendOTP(ctx, "a@x.com")
	_, err = client.VerifyOTP(ctx, "a@x.com", code)
	_, err = client.Register(ctx, shopsdk.RegisterRequest{
		Email:           "a@x.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		Mobile:          "0400000000",
	})
	login, err := client.Login(ctx, "a@x.com", "secret")

Login returns a session token valid for 24 hours. Attach it to a copy of the
client for authenticated calls:

	authed := client.WithToken(login.Token)
	me, err := authed.Me(ctx)

# Catalogue

Categories and products are created and updated with multipart forms so
images can ride along. Nil fields in the form types are left out of the
request, which leaves them unchanged on update:

	cat, err := client.CreateCategory(ctx, shopsdk.CategoryForm{
		CategoryName: shopsdk.String("Books"),
		Image:        &shopsdk.File{Name: "books.png", Data: png},
	})

# Errors

Non-2xx responses are returned as *APIError carrying the status code, the
machine readable code and the human readable message.
*/
package shopsdk
