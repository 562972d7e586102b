package scenario

import (
	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/verify"
)

// authLogin exercises /auth/login both ways: valid credentials must yield
// an acceptance status and a non-empty token, invalid credentials must be
// refused with 401.
//
// The token is opaque. It is checked for non-emptiness only and never
// attached to later requests; no authenticated-session workflow exists in
// this suite.
func authLogin(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	raw, err := env.Client.PostRaw("/auth/login", model.Credentials{
		Username: env.Cfg.Username,
		Password: env.Cfg.Password,
	})
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("login-status", raw, 200, 201)

	result := api.Decode[model.LoginResult](raw)
	_ = v.CheckTrue("token-not-empty", result.Token != "", "empty token in login response")

	bad, err := env.Client.PostRaw("/auth/login", model.Credentials{
		Username: "invalid_user",
		Password: "wrong_password",
	})
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("invalid-login-status", bad, 401)

	return rep
}
