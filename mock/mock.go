// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -package gate -source ../gate.go -destination ../mock_gate_test.go
//go:generate mockgen -package gate -source ../userstore/userstore.go -destination ../mock_userstore_test.go
//go:generate mockgen -package gate -destination ../mock_oidc_test.go github.com/crealaunch/gate/oidc Authenticator
