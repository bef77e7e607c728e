package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

// SeedService loads demo data for evaluation environments. Not a contract
// surface: the shape of the sample records follows the entity models, the
// counts are whatever the fixtures hold.
type SeedService struct {
	clientsCollection   *mongo.Collection
	contactsCollection  *mongo.Collection
	leadsCollection     *mongo.Collection
	projectsCollection  *mongo.Collection
	campaignsCollection *mongo.Collection
	tasksCollection     *mongo.Collection
	teamCollection      *mongo.Collection
	usersCollection     *mongo.Collection
}

func NewSeedService(clients, contacts, leads, projects, campaigns, tasks, team, users *mongo.Collection) *SeedService {
	return &SeedService{
		clientsCollection:   clients,
		contactsCollection:  contacts,
		leadsCollection:     leads,
		projectsCollection:  projects,
		campaignsCollection: campaigns,
		tasksCollection:     tasks,
		teamCollection:      team,
		usersCollection:     users,
	}
}

// SeedCounts reports how many documents each collection received.
type SeedCounts struct {
	TeamMembers int `json:"teamMembers"`
	Clients     int `json:"clients"`
	Contacts    int `json:"contacts"`
	Leads       int `json:"leads"`
	Projects    int `json:"projects"`
	Campaigns   int `json:"campaigns"`
	Tasks       int `json:"tasks"`
}

// EnsureAdminUser creates the bootstrap admin account if no user holds the
// address yet. Called at startup so a fresh database is immediately usable.
func (s *SeedService) EnsureAdminUser(ctx context.Context, email, password string) error {
	var existing models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Admin User",
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if _, err := s.usersCollection.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	logging.Logger.Infof("Event ID: ADMIN_SEEDED, Description: Bootstrap admin account created for %s", email)
	return nil
}

// LoadSampleData wipes the entity collections (user accounts are kept) and
// inserts a linked demo dataset.
func (s *SeedService) LoadSampleData(ctx context.Context) (*SeedCounts, error) {
	for _, coll := range []*mongo.Collection{
		s.clientsCollection, s.contactsCollection, s.leadsCollection,
		s.projectsCollection, s.campaignsCollection, s.tasksCollection, s.teamCollection,
	} {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %v", coll.Name(), err)
		}
	}

	now := time.Now()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	daysAhead := func(d int) *time.Time { t := now.AddDate(0, 0, d); return &t }
	ref := func(id primitive.ObjectID) *primitive.ObjectID { return &id }

	members := []models.TeamMember{
		{ID: primitive.NewObjectID(), Name: "Sarah Johnson", Email: "sarah.johnson@smithsagency.com", Role: models.RoleAccountManager, Skills: []string{"Client Relations", "Project Management"}, CreatedAt: daysAgo(200), UpdatedAt: daysAgo(200)},
		{ID: primitive.NewObjectID(), Name: "Michael Chen", Email: "michael.chen@smithsagency.com", Role: models.RoleSEOSpecialist, Skills: []string{"SEO", "Google Analytics", "Content Strategy"}, CreatedAt: daysAgo(180), UpdatedAt: daysAgo(180)},
		{ID: primitive.NewObjectID(), Name: "Emily Rodriguez", Email: "emily.rodriguez@smithsagency.com", Role: models.RoleDesigner, Skills: []string{"UI/UX Design", "Branding", "Figma"}, CreatedAt: daysAgo(150), UpdatedAt: daysAgo(150)},
		{ID: primitive.NewObjectID(), Name: "David Park", Email: "david.park@smithsagency.com", Role: models.RoleMediaBuyer, Skills: []string{"Google Ads", "Facebook Ads", "PPC Strategy"}, CreatedAt: daysAgo(120), UpdatedAt: daysAgo(120)},
		{ID: primitive.NewObjectID(), Name: "Lisa Thompson", Email: "lisa.thompson@smithsagency.com", Role: models.RoleCopywriter, Skills: []string{"Content Writing", "Email Marketing"}, CreatedAt: daysAgo(100), UpdatedAt: daysAgo(100)},
		{ID: primitive.NewObjectID(), Name: "James Wilson", Email: "james.wilson@smithsagency.com", Role: models.RoleDeveloper, Skills: []string{"React", "WordPress", "E-commerce"}, CreatedAt: daysAgo(90), UpdatedAt: daysAgo(90)},
	}

	clients := []models.Client{
		{ID: primitive.NewObjectID(), CompanyName: "TechStart Solutions", Industry: models.IndustrySaaS, Website: "https://techstartsolutions.com", Tier: models.TierRetainer, Status: models.ClientActive, AssignedAccountManager: ref(members[0].ID), MonthlyRetainerValue: 5000, Notes: "Growing B2B SaaS startup looking to scale marketing.", CreatedAt: daysAgo(170), UpdatedAt: daysAgo(14)},
		{ID: primitive.NewObjectID(), CompanyName: "HealthPlus Clinics", Industry: models.IndustryHealthcare, Website: "https://healthplusclinics.com", Tier: models.TierProjectBased, Status: models.ClientActive, AssignedAccountManager: ref(members[0].ID), MonthlyRetainerValue: 0, Notes: "Multi-location provider, website redesign and local SEO.", CreatedAt: daysAgo(80), UpdatedAt: daysAgo(7)},
		{ID: primitive.NewObjectID(), CompanyName: "StyleHub Fashion", Industry: models.IndustryRetail, Website: "https://stylehubfashion.com", Tier: models.TierRetainer, Status: models.ClientActive, AssignedAccountManager: ref(members[0].ID), MonthlyRetainerValue: 3500, CreatedAt: daysAgo(60), UpdatedAt: daysAgo(3)},
		{ID: primitive.NewObjectID(), CompanyName: "GreenLeaf Organics", Industry: models.IndustryOther, Tier: models.TierOneTime, Status: models.ClientProspect, MonthlyRetainerValue: 0, Notes: "Evaluating a brand refresh proposal.", CreatedAt: daysAgo(10), UpdatedAt: daysAgo(10)},
	}

	contacts := []models.Contact{
		{ID: primitive.NewObjectID(), FirstName: "Alex", LastName: "Morgan", Email: "alex.morgan@techstartsolutions.com", JobTitle: "CEO", Client: ref(clients[0].ID), IsPrimary: true, PreferredContact: models.ContactByEmail, CreatedAt: daysAgo(168), UpdatedAt: daysAgo(168)},
		{ID: primitive.NewObjectID(), FirstName: "Priya", LastName: "Patel", Email: "priya.patel@healthplusclinics.com", Phone: "+1-555-0132", JobTitle: "Marketing Director", Client: ref(clients[1].ID), IsPrimary: true, PreferredContact: models.ContactByPhone, CreatedAt: daysAgo(78), UpdatedAt: daysAgo(78)},
		{ID: primitive.NewObjectID(), FirstName: "Chloe", LastName: "Nguyen", Email: "chloe@stylehubfashion.com", JobTitle: "Founder", Client: ref(clients[2].ID), IsPrimary: true, PreferredContact: models.ContactByWhatsApp, CreatedAt: daysAgo(58), UpdatedAt: daysAgo(58)},
	}

	leads := []models.Lead{
		{ID: primitive.NewObjectID(), CompanyName: "Brightline Legal", ContactName: "Dana Reeves", Email: "dana@brightlinelegal.com", Source: models.SourceReferral, EstimatedValue: 12000, Stage: models.StageQualified, FollowUpDate: daysAhead(3), AssignedTo: ref(members[0].ID), CreatedAt: daysAgo(20), UpdatedAt: daysAgo(2)},
		{ID: primitive.NewObjectID(), CompanyName: "Nordic Fitness", ContactName: "Erik Lund", Email: "erik@nordicfitness.io", Source: models.SourceLinkedIn, EstimatedValue: 8000, Stage: models.StageNew, CreatedAt: daysAgo(5), UpdatedAt: daysAgo(5)},
		{ID: primitive.NewObjectID(), CompanyName: "Casa Bella Interiors", ContactName: "Maria Santos", Email: "maria@casabella.com", Source: models.SourceInbound, EstimatedValue: 15000, Stage: models.StageProposalSent, FollowUpDate: daysAhead(5), AssignedTo: ref(members[0].ID), CreatedAt: daysAgo(15), UpdatedAt: daysAgo(4)},
		{ID: primitive.NewObjectID(), CompanyName: "Quantum Logistics", ContactName: "Tom Harris", Email: "tom@quantumlog.com", Source: models.SourceColdOutreach, EstimatedValue: 6000, Stage: models.StageLost, Notes: "Went with an in-house hire.", CreatedAt: daysAgo(45), UpdatedAt: daysAgo(30)},
	}

	projects := []models.Project{
		{ID: primitive.NewObjectID(), Title: "TechStart SEO Overhaul", Type: models.ProjectSEO, Client: ref(clients[0].ID), Status: models.ProjectInProgress, Budget: 20000, ActualSpend: 8500, AssignedTeamMembers: []primitive.ObjectID{members[1].ID, members[4].ID}, Deliverables: []string{"Technical audit", "Content calendar", "Link building"}, CreatedAt: daysAgo(50), UpdatedAt: daysAgo(1)},
		{ID: primitive.NewObjectID(), Title: "HealthPlus Website Redesign", Type: models.ProjectWebDesign, Client: ref(clients[1].ID), Status: models.ProjectInProgress, Budget: 35000, ActualSpend: 21000, AssignedTeamMembers: []primitive.ObjectID{members[2].ID, members[5].ID}, Deliverables: []string{"Wireframes", "Design system", "CMS build"}, CreatedAt: daysAgo(40), UpdatedAt: daysAgo(2)},
		{ID: primitive.NewObjectID(), Title: "StyleHub Spring Campaign", Type: models.ProjectPaidAds, Client: ref(clients[2].ID), Status: models.ProjectCompleted, Budget: 15000, ActualSpend: 14200, AssignedTeamMembers: []primitive.ObjectID{members[3].ID}, CreatedAt: daysAgo(55), UpdatedAt: daysAgo(12)},
	}

	// activeProjects is maintained alongside project assignment.
	members[1].ActiveProjects = []primitive.ObjectID{projects[0].ID}
	members[2].ActiveProjects = []primitive.ObjectID{projects[1].ID}
	members[4].ActiveProjects = []primitive.ObjectID{projects[0].ID}
	members[5].ActiveProjects = []primitive.ObjectID{projects[1].ID}

	campaigns := []models.Campaign{
		{ID: primitive.NewObjectID(), Name: "TechStart Brand Search", Client: ref(clients[0].ID), Type: models.CampaignGoogleAds, Status: models.CampaignActive, Budget: 6000, Spend: 2400, Platform: "Google", Goal: models.GoalLeads, KPIs: models.CampaignKPIs{Impressions: 120000, Clicks: 3400, Conversions: 85, CTR: 2.8, ROAS: 3.2}, CreatedAt: daysAgo(30), UpdatedAt: daysAgo(1)},
		{ID: primitive.NewObjectID(), Name: "StyleHub Lookbook Launch", Client: ref(clients[2].ID), Type: models.CampaignMetaAds, Status: models.CampaignActive, Budget: 4500, Spend: 4100, Platform: "Instagram", Goal: models.GoalSales, KPIs: models.CampaignKPIs{Impressions: 340000, Clicks: 9800, Conversions: 310, CTR: 2.9, ROAS: 4.1}, CreatedAt: daysAgo(25), UpdatedAt: daysAgo(2)},
		{ID: primitive.NewObjectID(), Name: "HealthPlus Newsletter", Client: ref(clients[1].ID), Type: models.CampaignEmail, Status: models.CampaignDraft, Budget: 1200, Goal: models.GoalAwareness, CreatedAt: daysAgo(8), UpdatedAt: daysAgo(8)},
	}

	tasks := []models.Task{
		{ID: primitive.NewObjectID(), Title: "Publish Q2 content calendar", LinkedToProject: ref(projects[0].ID), AssignedTo: ref(members[4].ID), DueDate: daysAhead(2), Priority: models.PriorityHigh, Status: models.StatusInProgress, CreatedAt: daysAgo(9), UpdatedAt: daysAgo(1)},
		{ID: primitive.NewObjectID(), Title: "Fix crawl errors on staging", LinkedToProject: ref(projects[0].ID), AssignedTo: ref(members[1].ID), DueDate: daysAhead(5), Priority: models.PriorityMedium, Status: models.StatusTodo, CreatedAt: daysAgo(6), UpdatedAt: daysAgo(6)},
		{ID: primitive.NewObjectID(), Title: "Review homepage wireframes", LinkedToProject: ref(projects[1].ID), LinkedToClient: ref(clients[1].ID), AssignedTo: ref(members[2].ID), DueDate: daysAhead(1), Priority: models.PriorityUrgent, Status: models.StatusTodo, CreatedAt: daysAgo(4), UpdatedAt: daysAgo(4)},
		{ID: primitive.NewObjectID(), Title: "Send Brightline proposal follow-up", LinkedToLead: ref(leads[0].ID), AssignedTo: ref(members[0].ID), DueDate: daysAhead(3), Priority: models.PriorityHigh, Status: models.StatusTodo, CreatedAt: daysAgo(3), UpdatedAt: daysAgo(3)},
		{ID: primitive.NewObjectID(), Title: "Archive spring campaign assets", LinkedToProject: ref(projects[2].ID), AssignedTo: ref(members[3].ID), DueDate: func() *time.Time { t := daysAgo(2); return &t }(), Priority: models.PriorityLow, Status: models.StatusTodo, CreatedAt: daysAgo(14), UpdatedAt: daysAgo(14)},
		{ID: primitive.NewObjectID(), Title: "Compile monthly KPI report", LinkedToClient: ref(clients[0].ID), AssignedTo: ref(members[0].ID), Priority: models.PriorityMedium, Status: models.StatusDone, CreatedAt: daysAgo(20), UpdatedAt: daysAgo(16)},
	}

	if err := insertAll(ctx, s.teamCollection, members); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.clientsCollection, clients); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.contactsCollection, contacts); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.leadsCollection, leads); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.projectsCollection, projects); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.campaignsCollection, campaigns); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, s.tasksCollection, tasks); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: SAMPLE_DATA_LOADED, Description: Demo dataset loaded: %d team members, %d clients, %d leads", len(members), len(clients), len(leads))

	return &SeedCounts{
		TeamMembers: len(members),
		Clients:     len(clients),
		Contacts:    len(contacts),
		Leads:       len(leads),
		Projects:    len(projects),
		Campaigns:   len(campaigns),
		Tasks:       len(tasks),
	}, nil
}

func insertAll[T any](ctx context.Context, coll *mongo.Collection, docs []T) error {
	payload := make([]interface{}, len(docs))
	for i, doc := range docs {
		payload[i] = doc
	}
	if _, err := coll.InsertMany(ctx, payload); err != nil {
		return fmt.Errorf("failed to seed %s: %v", coll.Name(), err)
	}
	return nil
}
