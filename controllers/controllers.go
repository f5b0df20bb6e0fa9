package controllers

import "clinicpro-backend/store"

// Data is the shared snapshot store, set once from main before the router
// starts serving.
var Data *store.Store

func UseStore(s *store.Store) {
	Data = s
}
