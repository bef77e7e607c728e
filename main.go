package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/handlers"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/middleware"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting CRM Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set in the environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: JWT_SECRET is not set in the environment variables.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := mongoClient.Database(mongoDBName)
	clientsCollection := db.Collection("clients")
	contactsCollection := db.Collection("contacts")
	leadsCollection := db.Collection("leads")
	projectsCollection := db.Collection("projects")
	campaignsCollection := db.Collection("campaigns")
	tasksCollection := db.Collection("tasks")
	teamCollection := db.Collection("team")
	usersCollection := db.Collection("users")

	// One breaker per dashboard source: a sick collection trips only its own
	// reads, the other sources keep serving.
	newDashboardBreaker := func(source string) *gobreaker.CircuitBreaker {
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        fmt.Sprintf("Dashboard-%s-CB", source),
			MaxRequests: 1,
			Timeout:     2 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
			},
		})
	}

	clientService := services.NewClientService(clientsCollection, teamCollection)
	contactService := services.NewContactService(contactsCollection, clientsCollection)
	leadService := services.NewLeadService(leadsCollection, teamCollection)
	projectService := services.NewProjectService(projectsCollection, clientsCollection, teamCollection)
	campaignService := services.NewCampaignService(campaignsCollection, clientsCollection)
	taskService := services.NewTaskService(tasksCollection, clientsCollection, projectsCollection, leadsCollection, teamCollection)
	teamService := services.NewTeamService(teamCollection, projectsCollection)
	userService := services.NewUserService(usersCollection)
	dashboardService := services.NewDashboardService(clientsCollection, leadsCollection, projectsCollection, tasksCollection, campaignsCollection, teamCollection, newDashboardBreaker)
	seedService := services.NewSeedService(clientsCollection, contactsCollection, leadsCollection, projectsCollection, campaignsCollection, tasksCollection, teamCollection, usersCollection)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@smithsagency.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := seedService.EnsureAdminUser(ctx, adminEmail, adminPassword); err != nil {
		logging.Logger.Fatalf("Event ID: ADMIN_SEED_FAILED, Description: Could not ensure admin account: %v", err)
	}

	clientHandler := handlers.NewClientHandler(clientService)
	contactHandler := handlers.NewContactHandler(contactService)
	leadHandler := handlers.NewLeadHandler(leadService)
	projectHandler := handlers.NewProjectHandler(projectService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	taskHandler := handlers.NewTaskHandler(taskService)
	teamHandler := handlers.NewTeamHandler(teamService)
	userHandler := handlers.NewUserHandler(userService)
	loginHandler := handlers.NewLoginHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	seedHandler := handlers.NewSeedHandler(seedService)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTAuthMiddleware(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTAuthMiddleware(middleware.RequireRole(h, "admin"))
	}

	r := mux.NewRouter()

	r.HandleFunc("/api/login", loginHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", loginHandler.Logout).Methods(http.MethodPost)

	r.Handle("/api/dashboard", protected(dashboardHandler.GetOverview)).Methods(http.MethodGet)

	r.Handle("/api/clients", protected(clientHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/clients", protected(clientHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/clients/{clientId}", protected(clientHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/clients/{clientId}", protected(clientHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/clients/{clientId}", protected(clientHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/contacts", protected(contactHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/contacts", protected(contactHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/contacts/{contactId}", protected(contactHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/contacts/{contactId}", protected(contactHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/contacts/{contactId}", protected(contactHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/leads", protected(leadHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/leads", protected(leadHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/leads/{leadId}", protected(leadHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/leads/{leadId}", protected(leadHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/leads/{leadId}", protected(leadHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/projects", protected(projectHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/projects", protected(projectHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/projects/{projectId}", protected(projectHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/projects/{projectId}", protected(projectHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/projects/{projectId}", protected(projectHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/campaigns", protected(campaignHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/campaigns", protected(campaignHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/campaigns/{campaignId}", protected(campaignHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/campaigns/{campaignId}", protected(campaignHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/campaigns/{campaignId}", protected(campaignHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/tasks", protected(taskHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/tasks", protected(taskHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/tasks/{taskId}", protected(taskHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{taskId}", protected(taskHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/tasks/{taskId}", protected(taskHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/team", protected(teamHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/team", adminOnly(teamHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/team/{teamId}", protected(teamHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/team/{teamId}", adminOnly(teamHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/team/{teamId}", adminOnly(teamHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/users", adminOnly(userHandler.GetAll)).Methods(http.MethodGet)
	r.Handle("/api/users", adminOnly(userHandler.Create)).Methods(http.MethodPost)
	r.Handle("/api/users/{id}", adminOnly(userHandler.GetByID)).Methods(http.MethodGet)
	r.Handle("/api/users/{id}", adminOnly(userHandler.Update)).Methods(http.MethodPatch, http.MethodPut)
	r.Handle("/api/users/{id}", adminOnly(userHandler.Delete)).Methods(http.MethodDelete)

	r.Handle("/api/seed", adminOnly(seedHandler.LoadSampleData)).Methods(http.MethodPost)

	corsRouter := middleware.EnableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
