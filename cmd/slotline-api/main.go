package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	httpadapter "github.com/slotline/slotline-agent/internal/adapters/http"
	"github.com/slotline/slotline-agent/internal/adapters/llm"
	firestorestore "github.com/slotline/slotline-agent/internal/adapters/storage/firestore"
	memstore "github.com/slotline/slotline-agent/internal/adapters/storage/memory"
	"github.com/slotline/slotline-agent/internal/app/booking"
	"github.com/slotline/slotline-agent/internal/app/conversation"
	"github.com/slotline/slotline-agent/internal/app/tools"
	"github.com/slotline/slotline-agent/internal/config"
	"github.com/slotline/slotline-agent/internal/domain"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// Slot catalog: file if configured, built-in defaults otherwise.
	var catalog *booking.Catalog
	if cfg.CatalogPath != "" {
		var err error
		catalog, err = booking.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("error loading catalog from %s: %v", cfg.CatalogPath, err)
		}
		log.Printf("[CATALOG] Loaded %d services from %s", len(catalog.Services()), cfg.CatalogPath)
	} else {
		catalog = booking.DefaultCatalog()
		log.Println("[CATALOG] Using built-in default catalog")
	}

	// Storage: Firestore or Memory
	var (
		sessionStore domain.SessionStore
		messageStore domain.MessageStore
		bookingStore domain.BookingStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		sessionStore = fsStore
		messageStore = fsStore
		bookingStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		messageStore = memstore.NewMessageStore()
		bookingStore = memstore.NewBookingStore()
	}

	bookingSvc := booking.NewService(catalog, bookingStore)

	registry := tools.NewRegistry(
		tools.NewListServicesTool(bookingSvc),
		tools.NewCheckAvailabilityTool(bookingSvc),
		tools.NewBookAppointmentTool(bookingSvc),
	)

	// Reasoning backend: mock for dev, Gemini on Vertex otherwise.
	var llmClient domain.LLMClient
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Gemini LLM client")
		client, err := llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini LLM client: %v", err)
		}
		llmClient = client
	}

	convSvc := conversation.NewService(llmClient, sessionStore, messageStore, registry)

	handler := httpadapter.NewServer(convSvc, bookingSvc)

	port := ":" + cfg.Port
	log.Println("Slotline API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}
