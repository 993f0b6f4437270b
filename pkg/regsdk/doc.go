/*
Package regsdk is a client for the early-access registration API.

# Overview

The registration API accepts early-access signups and exchanges identity
provider access tokens for API session tokens. A Client is configured once with
a base URL and API key and is safe for concurrent use.

	client := regsdk.NewClient(regsdk.Config{
		BaseURL: "https://admin.delveng.com/api/development",
		APIKey:  os.Getenv("SIGNUP_API_KEY"),
	})

# Session tokens

Session tokens returned by ExchangeIdentityToken are written to the client's
TokenStore and attached as a bearer token to every later request. The default
store is a MemoryTokenStore; bind a client to another slot with WithTokenStore:

	perDevice := client.WithTokenStore(slot)
	exchange, err := perDevice.ExchangeIdentityToken(ctx, googleAccessToken)

SignOut clears the slot. The SDK never expires or refreshes tokens.

# Registration

	resp, err := client.SubmitRegistration(ctx, regsdk.RegistrationRequest{
		FirstName:    "Ahmed",
		SecondName:   "Ali",
		Email:        "a@b.co",
		Interests:    "electrical",
		LearningMode: "live",
		HoursPerWeek: "1-5",
	})

# Errors

Every failure is one of four types, all inspectable with errors.As:

  - *NetworkError: no response was received
  - *AuthError: the identity token exchange was rejected
  - *ValidationError: the API rejected one or more fields
  - *GenericError: any other unsuccessful response

Message returns the single string suitable for showing to a user:

	if err != nil {
		showBanner(regsdk.Message(err))
	}

Requests are not retried.
*/
package regsdk
