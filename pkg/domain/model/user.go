package model

// User is an account on the upstream hosting service. Login is the
// canonical login as reported by the upstream, which may differ from
// caller input in case or surrounding whitespace.
type User struct {
	Login string `json:"login"`
}
