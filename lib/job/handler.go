package jobhandler

import (
	"time"

	"campus-jobs-backend/db"
	companystore "campus-jobs-backend/lib/company/store"
	categorystore "campus-jobs-backend/lib/dicts/category/store"
	hiringstagestore "campus-jobs-backend/lib/dicts/hiring-stage/store"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	notificationhandler "campus-jobs-backend/lib/notification"
	usersstore "campus-jobs-backend/lib/users/store"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	dictapimodels "campus-jobs-backend/models/api/dict"
	jobapimodels "campus-jobs-backend/models/api/job"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(managerID string, data jobapimodels.JobData) (id string, err error)
	Get(managerID, id string) (item jobapimodels.JobView, err error)
	Update(managerID, id string, data jobapimodels.JobData) error
	ToggleActive(managerID, id string) (status models.JobStatus, err error)
	Delete(managerID, id string) error
	List(managerID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	PublicList(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	PublicGet(id string) (item jobapimodels.JobView, err error)
	StageList(managerID, id string) (list []dictapimodels.HiringStageView, err error)
	StageSet(managerID, id string, stageIDs []string) error
	StageChangeOrder(managerID, id, stageID string, newOrder int) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         jobstore.NewInstance(db.DB),
		companyStore:  companystore.NewInstance(db.DB),
		categoryStore: categorystore.NewInstance(db.DB),
		stageStore:    hiringstagestore.NewInstance(db.DB),
		usersStore:    usersstore.NewInstance(db.DB),
		guard:         guard.Instance,
		notifications: notificationhandler.Instance,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"guard", instance.guard,
		"notifications", instance.notifications,
	)
	Instance = instance
}

type impl struct {
	store         jobstore.Provider
	companyStore  companystore.Provider
	categoryStore categorystore.Provider
	stageStore    hiringstagestore.Provider
	usersStore    usersstore.Provider
	guard         guard.Provider
	notifications notificationhandler.Queue
	now           func() time.Time
}

func (i impl) getLogger(managerID, jobID string) *log.Entry {
	logger := log.WithField("manager_id", managerID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}

// checkDependency validates references and returns the ordered pipeline to store
func (i impl) checkDependency(data jobapimodels.JobData) (stageIDs []string, err error) {
	if data.CategoryID != nil && *data.CategoryID != "" {
		category, err := i.categoryStore.GetByID(*data.CategoryID)
		if err != nil {
			return nil, errors.Wrap(err, "category loading failed")
		}
		if category == nil {
			return nil, models.NewValidationError("category_id", "category not found")
		}
	}
	if len(data.HiringStages) == 0 {
		return nil, nil
	}
	found, err := i.stageStore.ListByIDs(data.HiringStages)
	if err != nil {
		return nil, errors.Wrap(err, "hiring stages loading failed")
	}
	if len(found) != len(data.HiringStages) {
		return nil, models.NewValidationError("hiring_stages", "hiring stage not found")
	}
	return data.HiringStages, nil
}

func (i impl) defaultStageIDs() ([]string, error) {
	list, err := i.stageStore.DefaultList()
	if err != nil {
		return nil, errors.Wrap(err, "default hiring stages loading failed")
	}
	ids := make([]string, 0, len(list))
	for _, rec := range list {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (i impl) Create(managerID string, data jobapimodels.JobData) (id string, err error) {
	logger := i.getLogger(managerID, "")
	if err = data.Validate(i.now()); err != nil {
		return "", err
	}
	if err = i.guard.CompanyAllowed(managerID, data.CompanyID); err != nil {
		return "", err
	}
	stageIDs, err := i.checkDependency(data)
	if err != nil {
		return "", err
	}
	if stageIDs == nil {
		if stageIDs, err = i.defaultStageIDs(); err != nil {
			return "", err
		}
	}
	deadline, _ := data.GetDeadline()
	rec := dbmodels.Job{
		CompanyID:          data.CompanyID,
		CategoryID:         emptyToNil(data.CategoryID),
		CreatedByID:        managerID,
		Title:              data.Title,
		Description:        data.Description,
		Requirements:       data.Requirements,
		Responsibilities:   data.Responsibilities,
		Location:           data.Location,
		IsRemote:           data.IsRemote,
		JobType:            data.JobType,
		ExperienceLevel:    data.ExperienceLevel,
		SalaryMin:          data.SalaryMin,
		SalaryMax:          data.SalaryMax,
		IsSalaryVisible:    data.IsSalaryVisible,
		Vacancies:          data.Vacancies,
		Skills:             pq.StringArray(data.Skills),
		SubmissionDeadline: deadline,
		Status:             models.ResolveJobStatus(nil, data.Status, data.IsActive),
	}
	id, err = i.store.CreateWithStages(rec, stageIDs)
	if err != nil {
		return "", err
	}
	rec.ID = id
	logger.WithField("job_id", id).WithField("status", rec.Status).Info("job created")
	if rec.Status.IsActive() {
		i.onActivated(rec, managerID)
	}
	return id, nil
}

func (i impl) getAllowed(managerID, id string) (*dbmodels.Job, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "job loading failed")
	}
	if rec == nil {
		return nil, models.NewNotFound("job")
	}
	if err = i.guard.CompanyAllowed(managerID, rec.CompanyID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) Get(managerID, id string) (item jobapimodels.JobView, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	item = jobapimodels.JobConvert(*rec)
	counts, err := i.store.ApplicationCounts([]string{rec.ID})
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	item.ApplicationsCount = counts[rec.ID]
	return item, nil
}

func (i impl) Update(managerID, id string, data jobapimodels.JobData) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	logger := i.getLogger(managerID, id)
	now := i.now()
	if sameDeadline(rec.SubmissionDeadline, data.SubmissionDeadline) {
		now = time.Time{}
	}
	if err = data.Validate(now); err != nil {
		return err
	}
	if data.CompanyID != rec.CompanyID {
		if err = i.guard.CompanyAllowed(managerID, data.CompanyID); err != nil {
			return err
		}
	}
	stageIDs, err := i.checkDependency(data)
	if err != nil {
		return err
	}
	deadline, _ := data.GetDeadline()
	newStatus := models.ResolveJobStatus(&rec.Status, data.Status, data.IsActive)
	updMap := map[string]interface{}{
		"company_id":          data.CompanyID,
		"category_id":         emptyToNil(data.CategoryID),
		"title":               data.Title,
		"description":         data.Description,
		"requirements":        data.Requirements,
		"responsibilities":    data.Responsibilities,
		"location":            data.Location,
		"is_remote":           data.IsRemote,
		"job_type":            data.JobType,
		"experience_level":    data.ExperienceLevel,
		"salary_min":          data.SalaryMin,
		"salary_max":          data.SalaryMax,
		"is_salary_visible":   data.IsSalaryVisible,
		"vacancies":           data.Vacancies,
		"skills":              pq.StringArray(data.Skills),
		"submission_deadline": deadline,
		"status":              newStatus,
	}
	if err = i.store.Update(id, updMap, stageIDs); err != nil {
		return err
	}
	logger.WithField("status", newStatus).Info("job updated")
	if models.BecomesActive(rec.Status, newStatus) {
		rec.Title = data.Title
		rec.CompanyID = data.CompanyID
		rec.Status = newStatus
		i.onActivated(*rec, managerID)
	}
	return nil
}

func (i impl) ToggleActive(managerID, id string) (status models.JobStatus, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return "", err
	}
	newStatus := rec.Status.Toggled()
	if err = i.store.Update(id, map[string]interface{}{"status": newStatus}, nil); err != nil {
		return "", err
	}
	i.getLogger(managerID, id).WithField("status", newStatus).Info("job activity toggled")
	if models.BecomesActive(rec.Status, newStatus) {
		rec.Status = newStatus
		i.onActivated(*rec, managerID)
	}
	return newStatus, nil
}

func (i impl) Delete(managerID, id string) error {
	if _, err := i.getAllowed(managerID, id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return err
	}
	i.getLogger(managerID, id).Info("job deleted")
	return nil
}

func (i impl) List(managerID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	companyIDs, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, 0, err
	}
	if companyIDs == nil {
		// a nil scope means every company
		companyIDs = []string{}
	}
	return i.list(companyIDs, filter, false)
}

func (i impl) PublicList(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	filter.Status = models.JobStatusActive
	return i.list(nil, filter, true)
}

func (i impl) list(companyIDs []string, filter jobapimodels.JobFilter, public bool) (list []jobapimodels.JobView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(companyIDs, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) >= rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	recList, err := i.store.List(companyIDs, filter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(recList))
	for _, rec := range recList {
		ids = append(ids, rec.ID)
	}
	counts := map[string]int64{}
	if !public {
		if counts, err = i.store.ApplicationCounts(ids); err != nil {
			return nil, 0, err
		}
	}
	list = make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		var item jobapimodels.JobView
		if public {
			item = jobapimodels.PublicView(rec)
		} else {
			item = jobapimodels.JobConvert(rec)
			item.ApplicationsCount = counts[rec.ID]
		}
		list = append(list, item)
	}
	return list, rowCount, nil
}

func (i impl) PublicGet(id string) (item jobapimodels.JobView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil || !rec.Status.IsActive() {
		return jobapimodels.JobView{}, models.NewNotFound("job")
	}
	return jobapimodels.PublicView(*rec), nil
}

func (i impl) StageList(managerID, id string) (list []dictapimodels.HiringStageView, err error) {
	if _, err = i.getAllowed(managerID, id); err != nil {
		return nil, err
	}
	recList, err := i.store.StageList(id)
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.HiringStageView, 0, len(recList))
	for _, rec := range recList {
		if rec.HiringStage == nil {
			continue
		}
		view := dictapimodels.HiringStageConvert(*rec.HiringStage)
		view.OrderIndex = rec.OrderIndex
		list = append(list, view)
	}
	return list, nil
}

func (i impl) StageSet(managerID, id string, stageIDs []string) error {
	if _, err := i.getAllowed(managerID, id); err != nil {
		return err
	}
	found, err := i.stageStore.ListByIDs(stageIDs)
	if err != nil {
		return errors.Wrap(err, "hiring stages loading failed")
	}
	if len(found) != len(stageIDs) {
		return models.NewValidationError("stage_ids", "hiring stage not found")
	}
	if err = i.store.Update(id, nil, stageIDs); err != nil {
		return err
	}
	i.getLogger(managerID, id).Info("job pipeline replaced")
	return nil
}

func (i impl) StageChangeOrder(managerID, id, stageID string, newOrder int) error {
	if _, err := i.getAllowed(managerID, id); err != nil {
		return err
	}
	list, err := i.store.StageList(id)
	if err != nil {
		return err
	}
	newSet, changed := reorderStages(list, stageID, newOrder)
	if !changed {
		return nil
	}
	if err = i.store.StageSetOrder(id, newSet); err != nil {
		return err
	}
	i.getLogger(managerID, id).WithField("stage_id", stageID).Info("job pipeline order changed")
	return nil
}

// onActivated fans the job out to every active candidate and tells the other company managers.
// Failures are logged, the job change itself stays committed.
func (i impl) onActivated(rec dbmodels.Job, actorID string) {
	logger := i.getLogger(actorID, rec.ID)
	companyName := ""
	if company, err := i.companyStore.GetByID(rec.CompanyID); err != nil {
		logger.WithError(err).Warn("company loading failed")
	} else if company != nil {
		companyName = company.Name
	}
	count, err := i.notifications.EnqueueActiveCandidates(models.GetJobCreated(rec.ID, rec.Title, companyName))
	if err != nil {
		logger.WithError(err).Error("candidate fan-out failed")
	} else {
		logger.WithField("candidates", count).Info("candidate fan-out enqueued")
	}
	managerIDs, err := i.companyStore.ManagerIDs(rec.CompanyID)
	if err != nil {
		logger.WithError(err).Error("company managers loading failed")
		return
	}
	others := make([]string, 0, len(managerIDs))
	for _, managerID := range managerIDs {
		if managerID != actorID {
			others = append(others, managerID)
		}
	}
	if len(others) == 0 {
		return
	}
	actorName := models.SystemUser
	if actor, err := i.usersStore.GetByID(actorID); err == nil && actor != nil {
		actorName = actor.Name
	}
	err = i.notifications.Enqueue(others, models.GetJobActivated(rec.ID, rec.Title, companyName, actorName))
	if err != nil {
		logger.WithError(err).Error("manager notification failed")
	}
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

func sameDeadline(current *time.Time, value string) bool {
	if current == nil {
		return value == ""
	}
	return current.UTC().Format(apimodels.DateFormat) == value
}
