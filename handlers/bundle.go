package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every endpoint handler for route registration.
type HandlerBundle struct {
	// Plan generation.
	GeneratePlans gin.HandlerFunc

	// Roster endpoints.
	CreateMember gin.HandlerFunc
	ListMembers  gin.HandlerFunc
	GetMember    gin.HandlerFunc
	UpdateMember gin.HandlerFunc
	DeleteMember gin.HandlerFunc

	// History endpoints.
	SaveEvent   gin.HandlerFunc
	ListEvents  gin.HandlerFunc
	GetEvent    gin.HandlerFunc
	RateEvent   gin.HandlerFunc
	DeleteEvent gin.HandlerFunc

	// Provider telemetry endpoints.
	ProviderStats gin.HandlerFunc
	SetupABTest   gin.HandlerFunc
	ABTestResults gin.HandlerFunc
}
