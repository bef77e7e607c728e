package services

import (
	"context"
	"sort"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

const (
	upcomingWindow = 7 * 24 * time.Hour
	upcomingLimit  = 5
	activityLimit  = 8
)

// DashboardSnapshot holds independently fetched copies of the six source
// collections. A source that could not be read is present as an empty slice.
type DashboardSnapshot struct {
	Clients     []models.Client
	Leads       []models.Lead
	Projects    []models.Project
	Tasks       []models.Task
	Campaigns   []models.Campaign
	TeamMembers []models.TeamMember
}

type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Prospect int `json:"prospect"`
}

type LeadStats struct {
	Total int `json:"total"`
	New   int `json:"new"`
	Won   int `json:"won"`
}

type ProjectStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type TaskStats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Overdue    int `json:"overdue"`
}

type CampaignStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// MemberWorkload is the per-person display score: open tasks plus active
// projects, used only for ranking.
type MemberWorkload struct {
	Name     string          `json:"name"`
	Role     models.TeamRole `json:"role"`
	Tasks    int             `json:"tasks"`
	Projects int             `json:"projects"`
}

type TeamStats struct {
	Total    int              `json:"total"`
	Workload []MemberWorkload `json:"workload"`
}

type RevenueStats struct {
	MRR           float64 `json:"mrr"`
	PipelineValue float64 `json:"pipelineValue"`
}

type DashboardStats struct {
	Clients     ClientStats   `json:"clients"`
	Leads       LeadStats     `json:"leads"`
	Projects    ProjectStats  `json:"projects"`
	Tasks       TaskStats     `json:"tasks"`
	Campaigns   CampaignStats `json:"campaigns"`
	TeamMembers TeamStats     `json:"teamMembers"`
	Revenue     RevenueStats  `json:"revenue"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Kind        string    `json:"kind"` // client | project | lead
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DashboardOverview struct {
	Stats          DashboardStats  `json:"stats"`
	UpcomingTasks  []models.Task   `json:"upcomingTasks"`
	RecentActivity []ActivityEntry `json:"recentActivity"`
}

// ComputeDashboardStats reduces a snapshot into rollup counts, revenue sums
// and the workload ranking in one pass per collection. Pure: the reference
// time comes from the caller, inputs are never mutated, and there is no
// error path — a missing numeric field is zero, an empty collection yields
// zero counts.
func ComputeDashboardStats(snap DashboardSnapshot, now time.Time) DashboardStats {
	var stats DashboardStats

	stats.Clients.Total = len(snap.Clients)
	for _, c := range snap.Clients {
		switch c.Status {
		case models.ClientActive:
			stats.Clients.Active++
		case models.ClientProspect:
			stats.Clients.Prospect++
		}
		stats.Revenue.MRR += c.MonthlyRetainerValue
	}

	stats.Leads.Total = len(snap.Leads)
	for _, l := range snap.Leads {
		switch l.Stage {
		case models.StageNew:
			stats.Leads.New++
		case models.StageWon:
			stats.Leads.Won++
		}
		if l.Stage != models.StageLost {
			stats.Revenue.PipelineValue += l.EstimatedValue
		}
	}

	stats.Projects.Total = len(snap.Projects)
	for _, p := range snap.Projects {
		switch p.Status {
		case models.ProjectInProgress:
			stats.Projects.Active++
		case models.ProjectCompleted:
			stats.Projects.Completed++
		}
	}

	stats.Tasks.Total = len(snap.Tasks)
	for _, t := range snap.Tasks {
		switch t.Status {
		case models.StatusTodo:
			stats.Tasks.Todo++
		case models.StatusInProgress:
			stats.Tasks.InProgress++
		case models.StatusDone:
			stats.Tasks.Done++
		}
		// A task with no due date is never overdue.
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusDone {
			stats.Tasks.Overdue++
		}
	}

	stats.Campaigns.Total = len(snap.Campaigns)
	for _, c := range snap.Campaigns {
		if c.Status == models.CampaignActive {
			stats.Campaigns.Active++
		}
	}

	stats.TeamMembers.Total = len(snap.TeamMembers)
	stats.TeamMembers.Workload = rankWorkload(snap.TeamMembers, snap.Tasks)

	return stats
}

// rankWorkload scores each member by open tasks plus active projects and
// sorts descending. The sort is stable: equal scores keep input order.
func rankWorkload(members []models.TeamMember, tasks []models.Task) []MemberWorkload {
	workload := make([]MemberWorkload, 0, len(members))
	for _, member := range members {
		openTasks := 0
		for _, t := range tasks {
			if t.AssignedTo != nil && *t.AssignedTo == member.ID && t.Status != models.StatusDone {
				openTasks++
			}
		}
		workload = append(workload, MemberWorkload{
			Name:     member.Name,
			Role:     member.Role,
			Tasks:    openTasks,
			Projects: len(member.ActiveProjects),
		})
	}
	sort.SliceStable(workload, func(i, j int) bool {
		return workload[i].Tasks+workload[i].Projects > workload[j].Tasks+workload[j].Projects
	})
	return workload
}

// UpcomingTasks returns the first five unfinished tasks due inside the open
// interval (now, now+7d), soonest first. A task due exactly at either bound
// is excluded.
func UpcomingTasks(tasks []models.Task, now time.Time) []models.Task {
	horizon := now.Add(upcomingWindow)
	upcoming := []models.Task{}
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == models.StatusDone {
			continue
		}
		if t.DueDate.After(now) && t.DueDate.Before(horizon) {
			upcoming = append(upcoming, t)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return upcoming
}

// RecentActivity merges clients, projects and leads into a feed of tagged
// entries, newest first, capped at eight. Equal timestamps may appear in
// either order.
func RecentActivity(clients []models.Client, projects []models.Project, leads []models.Lead) []ActivityEntry {
	entries := make([]ActivityEntry, 0, len(clients)+len(projects)+len(leads))
	for _, c := range clients {
		entries = append(entries, ActivityEntry{Kind: "client", DisplayName: c.CompanyName, CreatedAt: c.CreatedAt})
	}
	for _, p := range projects {
		entries = append(entries, ActivityEntry{Kind: "project", DisplayName: p.Title, CreatedAt: p.CreatedAt})
	}
	for _, l := range leads {
		entries = append(entries, ActivityEntry{Kind: "lead", DisplayName: l.CompanyName, CreatedAt: l.CreatedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > activityLimit {
		entries = entries[:activityLimit]
	}
	return entries
}

// fetchFunc reads one full source collection into out.
type fetchFunc func(ctx context.Context, out interface{}) error

func collectionFetch(coll *mongo.Collection) fetchFunc {
	return func(ctx context.Context, out interface{}) error {
		cursor, err := coll.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, out)
	}
}

// snapshotSource pairs one collection read with its own circuit breaker, so
// a persistently failing source trips only its own reads.
type snapshotSource struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	fetch   fetchFunc
}

// BreakerFactory builds the per-source circuit breakers; main supplies it so
// breaker settings stay wired there.
type BreakerFactory func(name string) *gobreaker.CircuitBreaker

type DashboardService struct {
	clients   snapshotSource
	leads     snapshotSource
	projects  snapshotSource
	tasks     snapshotSource
	campaigns snapshotSource
	team      snapshotSource
}

func NewDashboardService(clients, leads, projects, tasks, campaigns, team *mongo.Collection, newBreaker BreakerFactory) *DashboardService {
	source := func(name string, coll *mongo.Collection) snapshotSource {
		return snapshotSource{name: name, breaker: newBreaker(name), fetch: collectionFetch(coll)}
	}
	return &DashboardService{
		clients:   source("clients", clients),
		leads:     source("leads", leads),
		projects:  source("projects", projects),
		tasks:     source("tasks", tasks),
		campaigns: source("campaigns", campaigns),
		team:      source("team", team),
	}
}

// GetOverview gathers the six sources concurrently and reduces them. It has
// no error return: a source that cannot be read degrades to an empty
// collection rather than failing the whole dashboard.
func (s *DashboardService) GetOverview(ctx context.Context, now time.Time) DashboardOverview {
	snap := s.snapshot(ctx)
	return DashboardOverview{
		Stats:          ComputeDashboardStats(snap, now),
		UpcomingTasks:  UpcomingTasks(snap.Tasks, now),
		RecentActivity: RecentActivity(snap.Clients, snap.Projects, snap.Leads),
	}
}

func (s *DashboardService) snapshot(ctx context.Context) DashboardSnapshot {
	var snap DashboardSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !fetchInto(gctx, s.clients, &snap.Clients) {
			snap.Clients = nil
		}
		return nil
	})
	g.Go(func() error {
		if !fetchInto(gctx, s.leads, &snap.Leads) {
			snap.Leads = nil
		}
		return nil
	})
	g.Go(func() error {
		if !fetchInto(gctx, s.projects, &snap.Projects) {
			snap.Projects = nil
		}
		return nil
	})
	g.Go(func() error {
		if !fetchInto(gctx, s.tasks, &snap.Tasks) {
			snap.Tasks = nil
		}
		return nil
	})
	g.Go(func() error {
		if !fetchInto(gctx, s.campaigns, &snap.Campaigns) {
			snap.Campaigns = nil
		}
		return nil
	})
	g.Go(func() error {
		if !fetchInto(gctx, s.team, &snap.TeamMembers) {
			snap.TeamMembers = nil
		}
		return nil
	})
	g.Wait()

	return snap
}

// fetchInto reads one source through its own circuit breaker. On any
// failure, including an open breaker, it reports false so the caller can
// reset the destination to empty.
func fetchInto(ctx context.Context, src snapshotSource, out interface{}) bool {
	_, err := src.breaker.Execute(func() (interface{}, error) {
		return nil, src.fetch(ctx, out)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: DASHBOARD_SOURCE_DEGRADED, Description: Snapshot of %s failed, continuing with empty collection: %v", src.name, err)
		return false
	}
	return true
}
