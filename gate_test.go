package session_test

import (
	"net/http"
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestGateAllowsAuthenticatedStore(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Identity{ID: "1", Email: "a@x.com", Name: "A"})

	gate := session.NewGate(store, newTestConfig("http://identity.invalid"))

	decision := gate.Evaluate()
	assert.True(t, decision.Allow)
	assert.Empty(t, decision.Redirect)
}

func TestGateRedirectsAnonymousVisitor(t *testing.T) {
	store := session.NewStore()

	gate := session.NewGate(store, newTestConfig("http://identity.invalid"))

	decision := gate.Evaluate()
	assert.False(t, decision.Allow)
	assert.Equal(t, "/signin", decision.Redirect)
	assert.True(t, decision.Replace, "redirect must replace the history entry")
}

func TestGateReevaluatesOnEveryCall(t *testing.T) {
	store := session.NewStore()
	gate := session.NewGate(store, newTestConfig("http://identity.invalid"))

	assert.False(t, gate.Evaluate().Allow)

	store.Set(session.Identity{ID: "1", Email: "a@x.com", Name: "A"})
	assert.True(t, gate.Evaluate().Allow)

	store.Clear()
	assert.False(t, gate.Evaluate().Allow)
}

func TestDecisionRedirectStatus(t *testing.T) {
	decision := session.Decision{Redirect: "/signin", Replace: true}

	assert.Equal(t, http.StatusFound, decision.RedirectStatus(http.MethodGet))
	assert.Equal(t, http.StatusSeeOther, decision.RedirectStatus(http.MethodPost))
	assert.Equal(t, http.StatusSeeOther, decision.RedirectStatus(http.MethodPut))
}
