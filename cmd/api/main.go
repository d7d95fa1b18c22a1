package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/partnerapi"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/smsgateway"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios e razão
	buyerRepo := database.NewBuyerRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	leadRepo := database.NewBuyerLeadRepository(db)
	txRepo := database.NewTransactionRepository(db)
	ledger := database.NewLedger(db)

	// 2. Canais de notificação
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "leads@liguemedicina.com"),
	)
	smsClient := smsgateway.NewClient()
	partnerClient := partnerapi.NewClient()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 3. Worker (consome a fila e dispara o canal certo)
	notifiers := map[entity.DeliveryMethod]queue.Notifier{
		entity.DeliveryPortal: queue.NewPortalNotifier(),
		entity.DeliveryEmail:  mailSender,
		entity.DeliverySMS:    smsClient,
		entity.DeliveryAPI:    partnerClient,
	}
	notifyWorker := queue.NewWorker(rabbitMQ.Ch, notifiers)
	go notifyWorker.Start(queue.QueueName)

	// Varredura de atribuições presas em pending
	staleWorker := worker.NewStaleAssignmentWorker(db)
	go staleWorker.Start(context.Background())

	// 4. UseCases
	freeLeads, _ := strconv.Atoi(envOr("FREE_LEADS_DEFAULT", "3"))

	matcher := usecase.NewFindEligibleBuyersUseCase(buyerRepo, campaignRepo)
	charger := usecase.NewChargeBuyerUseCase(ledger)
	distributeUC := usecase.NewDistributeLeadUseCase(matcher, charger, leadRepo, campaignRepo, producer)
	returnUC := usecase.NewReturnLeadUseCase(ledger, leadRepo)
	balanceUC := usecase.NewUpdateBalanceUseCase(ledger)
	createBuyerUC := usecase.NewCreateBuyerUseCase(buyerRepo, freeLeads)
	pauseUC := usecase.NewPauseBuyerUseCase(ledger)
	createCampaignUC := usecase.NewCreateCampaignUseCase(buyerRepo, campaignRepo)
	countersUC := usecase.NewResetCountersUseCase(campaignRepo)

	// 5. Handlers
	distributionHandler := handlers.NewDistributionHandler(distributeUC)
	returnHandler := handlers.NewReturnHandler(returnUC)
	webhookHandler := handlers.NewPaymentWebhookHandler(balanceUC)
	buyerHandler := handlers.NewBuyerHandler(createBuyerUC, pauseUC, buyerRepo, txRepo, leadRepo)
	campaignHandler := handlers.NewCampaignHandler(createCampaignUC, campaignRepo)
	countersHandler := handlers.NewCountersHandler(countersUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads/distribute", distributionHandler.Handle)
	r.Post("/leads/{buyerLeadId}/return", returnHandler.Handle)
	r.Post("/webhook/payment", webhookHandler.Handle)

	r.Post("/buyers", buyerHandler.HandleCreate)
	r.Get("/buyers/by-email", buyerHandler.HandleGetByEmail)
	r.Get("/buyers/{buyerId}", buyerHandler.HandleGet)
	r.Put("/buyers/{buyerId}/status", buyerHandler.HandleUpdateStatus)
	r.Get("/buyers/{buyerId}/transactions", buyerHandler.HandleListTransactions)
	r.Get("/buyers/{buyerId}/leads", buyerHandler.HandleListLeads)
	r.Post("/buyers/{buyerId}/campaigns", campaignHandler.HandleCreate)
	r.Get("/buyers/{buyerId}/campaigns", campaignHandler.HandleList)

	r.Post("/internal/campaigns/reset-daily", countersHandler.HandleResetDaily)
	r.Post("/internal/campaigns/reset-weekly", countersHandler.HandleResetWeekly)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server LigueLeads rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
