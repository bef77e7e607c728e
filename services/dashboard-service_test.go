package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrID(id primitive.ObjectID) *primitive.ObjectID { return &id }

func TestComputeDashboardStats_Rollups(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	snap := DashboardSnapshot{
		Clients: []models.Client{
			{Status: models.ClientActive, MonthlyRetainerValue: 5000},
			{Status: models.ClientActive, MonthlyRetainerValue: 3000},
			{Status: models.ClientProspect},
			{Status: models.ClientInactive, MonthlyRetainerValue: 1000},
		},
		Leads: []models.Lead{
			{Stage: models.StageNew, EstimatedValue: 10000},
			{Stage: models.StageWon, EstimatedValue: 20000},
			{Stage: models.StageLost, EstimatedValue: 99999},
			{Stage: models.StageQualified, EstimatedValue: 5000},
		},
		Projects: []models.Project{
			{Status: models.ProjectInProgress},
			{Status: models.ProjectCompleted},
			{Status: models.ProjectPlanning},
		},
		Tasks: []models.Task{
			{Status: models.StatusTodo},
			{Status: models.StatusInProgress},
			{Status: models.StatusDone},
		},
		Campaigns: []models.Campaign{
			{Status: models.CampaignActive},
			{Status: models.CampaignDraft},
		},
		TeamMembers: []models.TeamMember{
			{Name: "Ana", Role: models.RoleDesigner},
		},
	}

	stats := ComputeDashboardStats(snap, now)

	assert.Equal(t, 4, stats.Clients.Total)
	assert.Equal(t, 2, stats.Clients.Active)
	assert.Equal(t, 1, stats.Clients.Prospect)

	assert.Equal(t, 4, stats.Leads.Total)
	assert.Equal(t, 1, stats.Leads.New)
	assert.Equal(t, 1, stats.Leads.Won)

	assert.Equal(t, 3, stats.Projects.Total)
	assert.Equal(t, 1, stats.Projects.Active)
	assert.Equal(t, 1, stats.Projects.Completed)

	assert.Equal(t, 3, stats.Tasks.Total)
	assert.Equal(t, 1, stats.Tasks.Todo)
	assert.Equal(t, 1, stats.Tasks.InProgress)
	assert.Equal(t, 1, stats.Tasks.Done)

	assert.Equal(t, 2, stats.Campaigns.Total)
	assert.Equal(t, 1, stats.Campaigns.Active)

	assert.Equal(t, 1, stats.TeamMembers.Total)

	// MRR includes every client regardless of status; the pipeline skips
	// only lost leads.
	assert.Equal(t, 9000.0, stats.Revenue.MRR)
	assert.Equal(t, 35000.0, stats.Revenue.PipelineValue)
}

func TestComputeDashboardStats_EmptySnapshot(t *testing.T) {
	stats := ComputeDashboardStats(DashboardSnapshot{}, time.Now())

	assert.Equal(t, 0, stats.Clients.Total)
	assert.Equal(t, 0, stats.Tasks.Overdue)
	assert.Equal(t, 0.0, stats.Revenue.MRR)
	assert.Equal(t, 0.0, stats.Revenue.PipelineValue)
	assert.Empty(t, stats.TeamMembers.Workload)
}

func TestComputeDashboardStats_Overdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	snap := DashboardSnapshot{
		Tasks: []models.Task{
			{Status: models.StatusTodo, DueDate: ptrTime(past)},
			{Status: models.StatusInProgress, DueDate: ptrTime(past)},
			// Finished tasks are never overdue, even past due.
			{Status: models.StatusDone, DueDate: ptrTime(past)},
			// No due date means never overdue.
			{Status: models.StatusTodo},
			{Status: models.StatusTodo, DueDate: ptrTime(future)},
		},
	}

	stats := ComputeDashboardStats(snap, now)
	assert.Equal(t, 2, stats.Tasks.Overdue)
}

func TestComputeDashboardStats_RevenueOrderInvariant(t *testing.T) {
	now := time.Now()
	clients := []models.Client{
		{MonthlyRetainerValue: 100.5},
		{MonthlyRetainerValue: 200.25},
		{MonthlyRetainerValue: 300},
	}
	forward := ComputeDashboardStats(DashboardSnapshot{Clients: clients}, now)
	reversed := ComputeDashboardStats(DashboardSnapshot{
		Clients: []models.Client{clients[2], clients[1], clients[0]},
	}, now)

	assert.Equal(t, forward.Revenue.MRR, reversed.Revenue.MRR)
}

func TestRankWorkload(t *testing.T) {
	anaID := primitive.NewObjectID()
	markoID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()

	members := []models.TeamMember{
		{ID: anaID, Name: "Ana", Role: models.RoleDesigner},
		{ID: markoID, Name: "Marko", Role: models.RoleDeveloper, ActiveProjects: []primitive.ObjectID{projectID}},
	}
	tasks := []models.Task{
		{AssignedTo: ptrID(anaID), Status: models.StatusTodo},
		{AssignedTo: ptrID(anaID), Status: models.StatusInProgress},
		{AssignedTo: ptrID(anaID), Status: models.StatusTodo},
		// Done tasks do not count toward workload.
		{AssignedTo: ptrID(markoID), Status: models.StatusDone},
		{AssignedTo: ptrID(markoID), Status: models.StatusTodo},
		// Unassigned tasks count for nobody.
		{Status: models.StatusTodo},
	}

	workload := rankWorkload(members, tasks)

	assert.Len(t, workload, 2)
	assert.Equal(t, "Ana", workload[0].Name)
	assert.Equal(t, 3, workload[0].Tasks)
	assert.Equal(t, 0, workload[0].Projects)
	assert.Equal(t, "Marko", workload[1].Name)
	assert.Equal(t, 1, workload[1].Tasks)
	assert.Equal(t, 1, workload[1].Projects)
}

func TestRankWorkload_TiesKeepInputOrder(t *testing.T) {
	members := []models.TeamMember{
		{ID: primitive.NewObjectID(), Name: "First"},
		{ID: primitive.NewObjectID(), Name: "Second"},
		{ID: primitive.NewObjectID(), Name: "Third"},
	}

	workload := rankWorkload(members, nil)

	assert.Equal(t, "First", workload[0].Name)
	assert.Equal(t, "Second", workload[1].Name)
	assert.Equal(t, "Third", workload[2].Name)
}

func TestUpcomingTasks_WindowBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		// Exactly at the bounds is excluded, the window is open on both ends.
		{Title: "at-now", Status: models.StatusTodo, DueDate: ptrTime(now)},
		{Title: "at-horizon", Status: models.StatusTodo, DueDate: ptrTime(now.Add(7 * 24 * time.Hour))},
		{Title: "just-inside", Status: models.StatusTodo, DueDate: ptrTime(now.Add(time.Second))},
		{Title: "just-before-horizon", Status: models.StatusTodo, DueDate: ptrTime(now.Add(7*24*time.Hour - time.Second))},
		{Title: "done-soon", Status: models.StatusDone, DueDate: ptrTime(now.Add(time.Hour))},
		{Title: "no-due-date", Status: models.StatusTodo},
		{Title: "past", Status: models.StatusTodo, DueDate: ptrTime(now.Add(-time.Hour))},
	}

	upcoming := UpcomingTasks(tasks, now)

	assert.Len(t, upcoming, 2)
	assert.Equal(t, "just-inside", upcoming[0].Title)
	assert.Equal(t, "just-before-horizon", upcoming[1].Title)
}

func TestUpcomingTasks_SortedAndCapped(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := make([]models.Task, 0, 7)
	for i := 6; i >= 0; i-- {
		tasks = append(tasks, models.Task{
			Title:   string(rune('a' + i)),
			Status:  models.StatusTodo,
			DueDate: ptrTime(now.Add(time.Duration(i+1) * time.Hour)),
		})
	}

	upcoming := UpcomingTasks(tasks, now)

	assert.Len(t, upcoming, 5)
	for i := 0; i < len(upcoming)-1; i++ {
		assert.True(t, upcoming[i].DueDate.Before(*upcoming[i+1].DueDate))
	}
	assert.Equal(t, "a", upcoming[0].Title)
}

func TestRecentActivity_MergedNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	clients := []models.Client{
		{CompanyName: "Acme", CreatedAt: base.Add(3 * time.Hour)},
	}
	projects := []models.Project{
		{Title: "Rebrand", CreatedAt: base.Add(5 * time.Hour)},
	}
	leads := []models.Lead{
		{CompanyName: "Globex", CreatedAt: base.Add(1 * time.Hour)},
	}

	entries := RecentActivity(clients, projects, leads)

	assert.Len(t, entries, 3)
	assert.Equal(t, "project", entries[0].Kind)
	assert.Equal(t, "Rebrand", entries[0].DisplayName)
	assert.Equal(t, "client", entries[1].Kind)
	assert.Equal(t, "lead", entries[2].Kind)
}

func TestRecentActivity_CappedAtEight(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	clients := make([]models.Client, 6)
	for i := range clients {
		clients[i] = models.Client{CompanyName: "c", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	leads := make([]models.Lead, 6)
	for i := range leads {
		leads[i] = models.Lead{CompanyName: "l", CreatedAt: base.Add(time.Duration(i+10) * time.Minute)}
	}

	entries := RecentActivity(clients, nil, leads)

	assert.Len(t, entries, 8)
	for i := 0; i < len(entries)-1; i++ {
		assert.False(t, entries[i].CreatedAt.Before(entries[i+1].CreatedAt))
	}
}
