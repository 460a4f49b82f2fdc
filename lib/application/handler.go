package applicationhandler

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"campus-jobs-backend/db"
	applicationstore "campus-jobs-backend/lib/application/store"
	companystore "campus-jobs-backend/lib/company/store"
	applicationstatusprovider "campus-jobs-backend/lib/dicts/application-status"
	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	eventstore "campus-jobs-backend/lib/event/store"
	pdfexport "campus-jobs-backend/lib/export/pdf"
	xlsexport "campus-jobs-backend/lib/export/xls"
	filestorage "campus-jobs-backend/lib/file-storage"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	notificationhandler "campus-jobs-backend/lib/notification"
	usersstore "campus-jobs-backend/lib/users/store"
	"campus-jobs-backend/lib/utils/helpers"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	"campus-jobs-backend/models"
	applicationapimodels "campus-jobs-backend/models/api/application"
	eventapimodels "campus-jobs-backend/models/api/event"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ResumeFile is an uploaded resume, Reader is consumed by Submit
type ResumeFile struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

type Provider interface {
	List(managerID string, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	CandidateList(candidateID string, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	Get(managerID, id string) (item applicationapimodels.ApplicationViewExt, err error)
	Submit(ctx context.Context, candidateID, jobID string, data applicationapimodels.SubmitRequest, resume *ResumeFile) (id string, err error)
	UpdateStatus(managerID, id, statusID string) error
	// UpdateStage returns notified=false when the stage was saved but the candidate was not notified
	UpdateStage(managerID, id, stageID, notes string) (notified bool, err error)
	Accept(ctx context.Context, managerID, id string) error
	Reject(ctx context.Context, managerID, id string) error
	ToggleFavorite(managerID, id string) (isFavorite bool, err error)
	UpdateNotes(managerID, id, notes string) error
	ExportXls(managerID string, filter applicationapimodels.ApplicationFilter) (*bytes.Buffer, error)
	ExportPdf(ctx context.Context, managerID, id string) ([]byte, error)
	GetResume(ctx context.Context, managerID, id string) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         applicationstore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		statusStore:   applicationstatusstore.NewInstance(db.DB),
		companyStore:  companystore.NewInstance(db.DB),
		eventStore:    eventstore.NewInstance(db.DB),
		usersStore:    usersstore.NewInstance(db.DB),
		statuses:      applicationstatusprovider.Instance,
		guard:         guard.Instance,
		notifications: notificationhandler.Instance,
		files:         filestorage.Instance,
		xls:           xlsexport.Instance,
		pdf:           pdfexport.Instance,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"statuses", instance.statuses,
		"guard", instance.guard,
		"notifications", instance.notifications,
		"xls", instance.xls,
		"pdf", instance.pdf,
	)
	Instance = instance
}

type impl struct {
	store         applicationstore.Provider
	jobStore      jobstore.Provider
	statusStore   applicationstatusstore.Provider
	companyStore  companystore.Provider
	eventStore    eventstore.Provider
	usersStore    usersstore.Provider
	statuses      applicationstatusprovider.Provider
	guard         guard.Provider
	notifications notificationhandler.Sink
	files         filestorage.Provider
	xls           xlsexport.Provider
	pdf           pdfexport.Provider
	now           func() time.Time
}

func (i impl) getLogger(userID, applicationID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if applicationID != "" {
		logger = logger.WithField("application_id", applicationID)
	}
	return logger
}

func (i impl) getAllowed(managerID, id string) (*dbmodels.JobApplication, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "application loading failed")
	}
	if rec == nil || rec.Job == nil {
		return nil, models.NewNotFound("application")
	}
	if err = i.guard.CompanyAllowed(managerID, rec.Job.CompanyID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) List(managerID string, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	companyIDs, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, 0, err
	}
	if companyIDs == nil {
		companyIDs = []string{}
	}
	return i.list(applicationstore.Scope{CompanyIDs: companyIDs}, filter)
}

func (i impl) CandidateList(candidateID string, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	return i.list(applicationstore.Scope{CandidateID: candidateID}, filter)
}

func (i impl) list(scope applicationstore.Scope, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(scope, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) >= rowCount {
		return []applicationapimodels.ApplicationView{}, rowCount, nil
	}
	recList, err := i.store.List(scope, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, applicationapimodels.ApplicationConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Get(managerID, id string) (item applicationapimodels.ApplicationViewExt, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return applicationapimodels.ApplicationViewExt{}, err
	}
	item = applicationapimodels.ApplicationExtConvert(*rec)
	events, err := i.eventStore.ListByApplication(id)
	if err != nil {
		return applicationapimodels.ApplicationViewExt{}, errors.Wrap(err, "application events loading failed")
	}
	for _, event := range events {
		item.Events = append(item.Events, eventapimodels.EventConvert(event))
	}
	return item, nil
}

func (i impl) Submit(ctx context.Context, candidateID, jobID string, data applicationapimodels.SubmitRequest, resume *ResumeFile) (id string, err error) {
	logger := i.getLogger(candidateID, "").WithField("job_id", jobID)
	if err = data.Validate(); err != nil {
		return "", err
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return "", errors.Wrap(err, "job loading failed")
	}
	if job == nil || !job.Status.IsActive() {
		return "", models.NewNotFound("job")
	}
	if job.SubmissionDeadline != nil && helpers.EndOfDay(helpers.UTCDate(*job.SubmissionDeadline)).Before(i.now()) {
		return "", models.NewPolicyError("the submission deadline has passed")
	}
	status, err := i.statusStore.First()
	if err != nil {
		return "", errors.Wrap(err, "initial status loading failed")
	}
	if status == nil {
		return "", errors.New("application statuses are not configured")
	}
	rec := dbmodels.JobApplication{
		JobID:       jobID,
		UserID:      candidateID,
		StatusID:    status.ID,
		CoverLetter: strings.TrimSpace(data.CoverLetter),
	}
	var history *dbmodels.ApplicationStageHistory
	if len(job.Stages) != 0 {
		stageID := job.Stages[0].HiringStageID
		rec.StageID = &stageID
		history = &dbmodels.ApplicationStageHistory{
			StageID:     stageID,
			ChangedByID: &candidateID,
			Notes:       models.HistoryNoteSubmitted,
		}
	}
	if resume != nil {
		if rec.Resume, err = i.uploadResume(ctx, candidateID, resume); err != nil {
			return "", err
		}
		rec.ResumeName = resume.Name
	}
	id, err = i.store.Create(rec, history)
	if err != nil {
		if rec.Resume != "" {
			if delErr := i.files.Delete(ctx, rec.Resume); delErr != nil {
				logger.WithError(delErr).Warn("orphan resume cleanup failed")
			}
		}
		return "", err
	}
	logger = logger.WithField("application_id", id)
	logger.Info("application submitted")

	candidateName := models.SystemUser
	if candidate, err := i.usersStore.GetByID(candidateID); err != nil {
		logger.WithError(err).Warn("candidate loading failed")
	} else if candidate != nil {
		candidateName = candidate.Name
	}
	managerIDs, err := i.companyStore.ManagerIDs(job.CompanyID)
	if err != nil {
		logger.WithError(err).Error("company managers loading failed")
		return id, nil
	}
	for _, managerID := range managerIDs {
		i.notify(logger, managerID, models.GetNewApplication(id, candidateName, job.Title))
	}
	return id, nil
}

func (i impl) uploadResume(ctx context.Context, candidateID string, resume *ResumeFile) (string, error) {
	if !applicationapimodels.ResumeExtensions[strings.ToLower(path.Ext(resume.Name))] {
		return "", models.NewValidationError("resume", "resume must be a pdf, doc or docx file")
	}
	if resume.Size > applicationapimodels.ResumeMaxSize {
		return "", models.NewValidationError("resume", "resume must not exceed 5 MB")
	}
	if i.files == nil {
		return "", models.NewPolicyError("file storage is not configured")
	}
	return i.files.Upload(ctx, filestorage.FolderResume, candidateID, resume.Name, resume.Reader, resume.Size, resume.ContentType)
}

func (i impl) UpdateStatus(managerID, id, statusID string) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	status, err := i.statusStore.GetByID(statusID)
	if err != nil {
		return errors.Wrap(err, "status loading failed")
	}
	if status == nil {
		return models.NewValidationError("status_id", "status not found")
	}
	if err = i.store.ChangeStatus(id, statusID, nil); err != nil {
		return err
	}
	logger := i.getLogger(managerID, id).WithField("status_id", statusID)
	logger.Info("application status changed")
	oldName := ""
	if rec.Status != nil {
		oldName = rec.Status.Name
	}
	i.notify(logger, rec.UserID, models.GetApplicationStatusChanged(id, rec.Job.Title, oldName, status.Name))
	return nil
}

func (i impl) UpdateStage(managerID, id, stageID, notes string) (notified bool, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return false, err
	}
	pipeline, err := i.jobStore.StageList(rec.JobID)
	if err != nil {
		return false, errors.Wrap(err, "job pipeline loading failed")
	}
	stageName := ""
	found := false
	for _, item := range pipeline {
		if item.HiringStageID == stageID {
			found = true
			if item.HiringStage != nil {
				stageName = item.HiringStage.Name
			}
			break
		}
	}
	if !found {
		return false, models.NewValidationError("stage_id", "the stage is not part of the job pipeline")
	}
	history := dbmodels.ApplicationStageHistory{
		StageID:     stageID,
		ChangedByID: &managerID,
		Notes:       strings.TrimSpace(notes),
	}
	if err = i.store.ChangeStage(id, history); err != nil {
		return false, err
	}
	logger := i.getLogger(managerID, id).WithField("stage_id", stageID)
	logger.Info("application stage changed")
	return i.notify(logger, rec.UserID, models.GetApplicationStageChanged(id, rec.Job.Title, stageName)), nil
}

func (i impl) Accept(ctx context.Context, managerID, id string) error {
	return i.finalize(ctx, managerID, id, models.StatusKindAccepted)
}

func (i impl) Reject(ctx context.Context, managerID, id string) error {
	return i.finalize(ctx, managerID, id, models.StatusKindRejected)
}

func (i impl) finalize(ctx context.Context, managerID, id string, kind models.StatusKind) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	status, err := i.statuses.Resolve(ctx, kind)
	if err != nil {
		return err
	}
	note := models.HistoryNoteAccepted
	data := models.GetApplicationAccepted(id, rec.Job.Title)
	if kind == models.StatusKindRejected {
		note = models.HistoryNoteRejected
		data = models.GetApplicationRejected(id, rec.Job.Title)
	}
	var history *dbmodels.ApplicationStageHistory
	if rec.StageID != nil {
		history = &dbmodels.ApplicationStageHistory{
			StageID:     *rec.StageID,
			ChangedByID: &managerID,
			Notes:       note,
		}
	}
	if err = i.store.ChangeStatus(id, status.ID, history); err != nil {
		return err
	}
	logger := i.getLogger(managerID, id).WithField("status_id", status.ID)
	logger.Infof("application %s", kind)
	i.notify(logger, rec.UserID, data)
	return nil
}

func (i impl) ToggleFavorite(managerID, id string) (isFavorite bool, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return false, err
	}
	isFavorite = !rec.IsFavorite
	if err = i.store.Update(id, map[string]interface{}{"is_favorite": isFavorite}); err != nil {
		return false, err
	}
	logger := i.getLogger(managerID, id)
	i.notify(logger, rec.UserID, models.GetApplicationFavorite(id, rec.Job.Title))
	return isFavorite, nil
}

func (i impl) UpdateNotes(managerID, id, notes string) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	if err = i.store.Update(id, map[string]interface{}{"notes": notes}); err != nil {
		return err
	}
	logger := i.getLogger(managerID, id)
	i.notify(logger, rec.UserID, models.GetApplicationNote(id, rec.Job.Title))
	return nil
}

func (i impl) ExportXls(managerID string, filter applicationapimodels.ApplicationFilter) (*bytes.Buffer, error) {
	companyIDs, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, err
	}
	if companyIDs == nil {
		companyIDs = []string{}
	}
	recList, err := i.store.ListForExport(applicationstore.Scope{CompanyIDs: companyIDs}, filter, applicationapimodels.ExportLimit)
	if err != nil {
		return nil, err
	}
	list := make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, applicationapimodels.ApplicationConvert(rec))
	}
	return i.xls.ExportApplicationList(list)
}

var pdfImageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

func (i impl) ExportPdf(ctx context.Context, managerID, id string) ([]byte, error) {
	item, err := i.Get(managerID, id)
	if err != nil {
		return nil, err
	}
	data := pdfexport.SummaryData{
		Application: item,
		Events:      item.Events,
	}
	data.Logo = i.companyLogo(ctx, item.CompanyID)
	return i.pdf.ApplicationSummary(data)
}

// companyLogo returns nil when there is no printable logo
func (i impl) companyLogo(ctx context.Context, companyID string) *pdfexport.Image {
	if i.files == nil {
		return nil
	}
	company, err := i.companyStore.GetByID(companyID)
	if err != nil || company == nil || company.Logo == "" {
		return nil
	}
	if !pdfImageExtensions[strings.ToLower(path.Ext(company.Logo))] {
		return nil
	}
	body, err := i.files.GetFile(ctx, company.Logo)
	if err != nil {
		log.WithError(err).WithField("company_id", companyID).Warn("company logo loading failed")
		return nil
	}
	return &pdfexport.Image{FileName: path.Base(company.Logo), Body: body}
}

func (i impl) GetResume(ctx context.Context, managerID, id string) (body []byte, fileName string, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return nil, "", err
	}
	if rec.Resume == "" {
		return nil, "", models.NewNotFound("resume")
	}
	if i.files == nil {
		return nil, "", models.NewPolicyError("file storage is not configured")
	}
	body, err = i.files.GetFile(ctx, rec.Resume)
	if err != nil {
		return nil, "", err
	}
	fileName = rec.ResumeName
	if fileName == "" {
		fileName = path.Base(rec.Resume)
	}
	return body, fileName, nil
}

// notify delivers best-effort, a failure is logged and reported as false
func (i impl) notify(logger *log.Entry, userID string, data models.NotificationData) bool {
	if err := i.notifications.Send(userID, data); err != nil {
		logger.WithError(err).WithField("code", data.Code).Error("notification failed")
		return false
	}
	return true
}
