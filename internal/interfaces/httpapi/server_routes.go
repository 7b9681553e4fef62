package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// scoped wraps a handler with the full guard chain: bearer auth first, then
// league scope resolution. Per-route membership and admin checks live in the
// handlers because they need both values.
func scoped(verifier TokenVerifier, handlerFunc http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, LeagueScope(handlerFunc))
}

func registerSlotRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/slots", scoped(verifier, handler.ListSlots))
	mux.Handle("POST /v1/slots", scoped(verifier, handler.CreateSlot))
	mux.Handle("GET /v1/slots/{slotID}", scoped(verifier, handler.GetSlot))
	mux.Handle("POST /v1/slots/{slotID}/claim", scoped(verifier, handler.ClaimSlot))
	mux.Handle("POST /v1/slots/{slotID}/release", scoped(verifier, handler.ReleaseSlot))
	mux.Handle("POST /v1/slots/{slotID}/cancel", scoped(verifier, handler.CancelSlot))
	mux.Handle("POST /v1/slots/import", scoped(verifier, handler.ImportSlots))
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/fields", scoped(verifier, handler.ListFields))
	mux.Handle("POST /v1/fields/import", scoped(verifier, handler.ImportFields))
}

func registerMembershipRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/memberships/me", RequireAuth(verifier, http.HandlerFunc(handler.MyMemberships)))
	mux.Handle("GET /v1/memberships", scoped(verifier, handler.ListMemberships))
	mux.Handle("POST /v1/memberships", scoped(verifier, handler.UpsertMembership))
	mux.Handle("DELETE /v1/memberships/{userID}", scoped(verifier, handler.DeleteMembership))
}
