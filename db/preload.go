package db

import (
	"encoding/json"
	"os"

	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	categorystore "campus-jobs-backend/lib/dicts/category/store"
	hiringstagestore "campus-jobs-backend/lib/dicts/hiring-stage/store"
	rolestore "campus-jobs-backend/lib/users/role-store"
	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillRoles()
	fillStatuses()
	fillHiringStages()
	fillCategories()
}

var defaultStatuses = []dbmodels.ApplicationStatus{
	{Name: "New", Slug: "new", Order: 1, Color: "#1976d2"},
	{Name: "Reviewed", Slug: "reviewed", Order: 2, Color: "#0288d1"},
	{Name: "Shortlisted", Slug: "shortlisted", Order: 3, Color: "#7b1fa2"},
	{Name: "Interview", Slug: "interview", Order: 4, Color: "#f57c00"},
	{Name: "Offered", Slug: "offered", Order: 5, Color: "#fbc02d"},
	{Name: "Accepted", Slug: "accepted", Order: 6, Color: "#2e7d32"},
	{Name: "Rejected", Slug: "rejected", Order: 7, Color: "#c62828"},
}

var defaultStages = []dbmodels.HiringStage{
	{Name: "Applied", OrderIndex: 1, IsDefault: true, Color: "#90caf9"},
	{Name: "Screening", OrderIndex: 2, IsDefault: true, Color: "#80deea"},
	{Name: "Interview", OrderIndex: 3, IsDefault: true, Color: "#ffcc80"},
	{Name: "Assessment", OrderIndex: 4, IsDefault: true, Color: "#ce93d8"},
	{Name: "Offer", OrderIndex: 5, IsDefault: true, Color: "#a5d6a7"},
}

func fillRoles() {
	store := rolestore.NewInstance(DB)
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleCandidate} {
		rec, err := store.GetBySlug(role)
		if err != nil {
			log.WithError(err).Error("roles preload failed")
			return
		}
		if rec != nil {
			continue
		}
		if _, err = store.Create(dbmodels.Role{Slug: role, Name: role.ToHuman()}); err != nil {
			log.WithError(err).WithField("role", role).Error("roles preload failed")
			return
		}
	}
}

func fillStatuses() {
	store := applicationstatusstore.NewInstance(DB)
	list, err := store.List()
	if err != nil {
		log.WithError(err).Error("application statuses preload failed")
		return
	}
	if len(list) > 0 {
		return
	}
	for _, rec := range defaultStatuses {
		if _, err = store.Create(rec); err != nil {
			log.WithError(err).WithField("status", rec.Slug).Error("application statuses preload failed")
			return
		}
	}
	log.Info("application statuses added")
}

func fillHiringStages() {
	store := hiringstagestore.NewInstance(DB)
	list, err := store.List()
	if err != nil {
		log.WithError(err).Error("hiring stages preload failed")
		return
	}
	if len(list) > 0 {
		return
	}
	for _, rec := range defaultStages {
		if _, err = store.Create(rec); err != nil {
			log.WithError(err).WithField("stage", rec.Name).Error("hiring stages preload failed")
			return
		}
	}
	log.Info("hiring stages added")
}

func fillCategories() {
	store := categorystore.NewInstance(DB)
	list, err := store.List()
	if err != nil {
		log.WithError(err).Error("categories preload failed")
		return
	}
	if len(list) > 0 {
		return
	}
	body, err := os.ReadFile("./static_preload/categories.json")
	if err != nil {
		log.WithError(err).Error("categories file read failed")
		return
	}
	items := []dbmodels.Category{}
	if err = json.Unmarshal(body, &items); err != nil {
		log.WithError(err).Error("categories file decode failed")
		return
	}
	for k, item := range items {
		item.OrderIndex = k + 1
		if _, err = store.Create(item); err != nil {
			log.WithError(err).WithField("category", item.Slug).Error("categories preload failed")
			return
		}
	}
	log.Info("categories added")
}
