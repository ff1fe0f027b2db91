package usecase

import (
	"context"
	"io"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakePredictor lets each test script the prediction outcome.
type fakePredictor struct {
	lastData entity.PatientData
	care     *service.CarePrediction
	risk     *service.RiskPrediction
	err      error
}

func (f *fakePredictor) PredictCareTemplate(ctx context.Context, data entity.PatientData) (*service.CarePrediction, error) {
	f.lastData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.care, nil
}

func (f *fakePredictor) PredictRiskAssessment(ctx context.Context, data entity.PatientData) (*service.RiskPrediction, error) {
	f.lastData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.risk, nil
}

// fakeCareTemplateRepo records created templates in memory.
type fakeCareTemplateRepo struct {
	created   []*entity.CareTemplate
	byID      map[string]*entity.CareTemplate
	createErr error
	deleted   []string
}

func newFakeCareTemplateRepo() *fakeCareTemplateRepo {
	return &fakeCareTemplateRepo{byID: map[string]*entity.CareTemplate{}}
}

func (f *fakeCareTemplateRepo) Create(ctx context.Context, template *entity.CareTemplate) error {
	if f.createErr != nil {
		return f.createErr
	}
	template.ID = primitive.NewObjectID()
	f.created = append(f.created, template)
	f.byID[template.ID.Hex()] = template
	return nil
}

func (f *fakeCareTemplateRepo) FindByID(ctx context.Context, id string) (*entity.CareTemplate, error) {
	return f.byID[id], nil
}

func (f *fakeCareTemplateRepo) FindLatest(ctx context.Context, userID string) (*entity.CareTemplate, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			return f.created[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCareTemplateRepo) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return apifeatures.PagedResult{}, nil
}

func (f *fakeCareTemplateRepo) Update(ctx context.Context, id string, update bson.M) (*entity.CareTemplate, error) {
	template := f.byID[id]
	if template == nil {
		return nil, nil
	}
	if status, ok := update["status"].(entity.CareTemplateStatus); ok {
		template.Status = status
	}
	if recs, ok := update["carePlan.recommendations"].([]string); ok {
		template.CarePlan.Recommendations = recs
	}
	if steps, ok := update["carePlan.nextSteps"].([]string); ok {
		template.CarePlan.NextSteps = steps
	}
	return template, nil
}

func (f *fakeCareTemplateRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeCareTemplateRepo) FindByStatus(ctx context.Context, userID string, status entity.CareTemplateStatus) ([]entity.CareTemplate, error) {
	var out []entity.CareTemplate
	for _, t := range f.created {
		if t.UserID == userID && t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeCareTemplateRepo) Stats(ctx context.Context, userID string) (*entity.CareTemplateStats, error) {
	return &entity.CareTemplateStats{}, nil
}

// fakeRiskAssessmentRepo stores assessments in insertion order.
type fakeRiskAssessmentRepo struct {
	created   []*entity.RiskAssessment
	createErr error
}

func (f *fakeRiskAssessmentRepo) Create(ctx context.Context, assessment *entity.RiskAssessment) error {
	if f.createErr != nil {
		return f.createErr
	}
	assessment.ID = primitive.NewObjectID()
	f.created = append(f.created, assessment)
	return nil
}

func (f *fakeRiskAssessmentRepo) FindByID(ctx context.Context, id string) (*entity.RiskAssessment, error) {
	for _, a := range f.created {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRiskAssessmentRepo) FindLatest(ctx context.Context, userID string) (*entity.RiskAssessment, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			return f.created[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRiskAssessmentRepo) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return apifeatures.PagedResult{}, nil
}

// fakeSymptomRepo stores symptom entries in insertion order.
type fakeSymptomRepo struct {
	created    []*entity.Symptom
	createErr  error
	recentDays int
}

func (f *fakeSymptomRepo) Create(ctx context.Context, symptom *entity.Symptom) error {
	if f.createErr != nil {
		return f.createErr
	}
	symptom.ID = primitive.NewObjectID()
	f.created = append(f.created, symptom)
	return nil
}

func (f *fakeSymptomRepo) FindByID(ctx context.Context, id string) (*entity.Symptom, error) {
	for _, s := range f.created {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSymptomRepo) FindLatest(ctx context.Context, userID string) (*entity.Symptom, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			return f.created[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSymptomRepo) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return apifeatures.PagedResult{}, nil
}

func (f *fakeSymptomRepo) Update(ctx context.Context, id string, update bson.M) (*entity.Symptom, error) {
	symptom, _ := f.FindByID(ctx, id)
	if symptom == nil {
		return nil, nil
	}
	if severity, ok := update["severity"].(entity.Severity); ok {
		symptom.Severity = severity
	}
	if notes, ok := update["notes"].(string); ok {
		symptom.Notes = notes
	}
	return symptom, nil
}

func (f *fakeSymptomRepo) Delete(ctx context.Context, id string) (int64, error) {
	for i, s := range f.created {
		if s.ID.Hex() == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeSymptomRepo) FindBySeverity(ctx context.Context, userID string, severity entity.Severity) ([]entity.Symptom, error) {
	return nil, nil
}

func (f *fakeSymptomRepo) FindRecent(ctx context.Context, userID string, days int) ([]entity.Symptom, error) {
	f.recentDays = days
	return nil, nil
}

func (f *fakeSymptomRepo) Stats(ctx context.Context, userID string) (*entity.SymptomStats, error) {
	return &entity.SymptomStats{}, nil
}

// fakeChatRepo captures the room upsert arguments alongside messages.
type fakeChatRepo struct {
	messages         []*entity.Message
	roomParticipants []string
	roomReceiverID   string
	roomLastMessage  string
	upsertErr        error
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	message.ID = primitive.NewObjectID()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) FindMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	for _, m := range f.messages {
		if m.ID.Hex() == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepo) DeleteMessage(ctx context.Context, id string) (int64, error) {
	for i, m := range f.messages {
		if m.ID.Hex() == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeChatRepo) MessagesBetween(ctx context.Context, userID1, userID2 string, params map[string]string) (apifeatures.PagedResult, error) {
	return apifeatures.PagedResult{}, nil
}

func (f *fakeChatRepo) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	return 0, nil
}

func (f *fakeChatRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeChatRepo) UpsertRoom(ctx context.Context, participants []string, lastMessageID, receiverID string) error {
	f.roomParticipants = participants
	f.roomLastMessage = lastMessageID
	f.roomReceiverID = receiverID
	return f.upsertErr
}

func (f *fakeChatRepo) RoomsForUser(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	return nil, nil
}

// fakeCrystalRepo keeps sessions and messages in memory.
type fakeCrystalRepo struct {
	sessions        []*entity.CrystalSession
	messages        []*entity.CrystalMessage
	bumpedSession   string
	bumpedMessage   string
	deletedSession  string
	deletedMessages string
}

func (f *fakeCrystalRepo) CreateSession(ctx context.Context, session *entity.CrystalSession) error {
	session.ID = primitive.NewObjectID()
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeCrystalRepo) FindSession(ctx context.Context, sessionID, userID string) (*entity.CrystalSession, error) {
	for _, s := range f.sessions {
		if s.SessionID == sessionID && s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeCrystalRepo) SessionsForUser(ctx context.Context, userID string) ([]entity.CrystalSession, error) {
	var out []entity.CrystalSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCrystalRepo) DeleteSession(ctx context.Context, sessionID string) error {
	f.deletedSession = sessionID
	return nil
}

func (f *fakeCrystalRepo) BumpSession(ctx context.Context, sessionID, lastMessage string) error {
	f.bumpedSession = sessionID
	f.bumpedMessage = lastMessage
	return nil
}

func (f *fakeCrystalRepo) CreateMessage(ctx context.Context, message *entity.CrystalMessage) error {
	message.ID = primitive.NewObjectID()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeCrystalRepo) MessagesForSession(ctx context.Context, sessionID string) ([]entity.CrystalMessage, error) {
	var out []entity.CrystalMessage
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeCrystalRepo) DeleteMessagesForSession(ctx context.Context, sessionID string) error {
	f.deletedMessages = sessionID
	return nil
}

// fakeCompleter records the transcript it was handed.
type fakeCompleter struct {
	transcript []service.ChatMessage
	reply      string
	err        error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []service.ChatMessage) (string, error) {
	f.transcript = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeUserRepo indexes users by id, email, username and reset token.
type fakeUserRepo struct {
	users   []*entity.User
	updates []bson.M
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range f.users {
		if u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, update bson.M) (*entity.User, error) {
	user, _ := f.FindByID(ctx, id)
	if user == nil {
		return nil, nil
	}
	f.updates = append(f.updates, update)
	if token, ok := update["resetPasswordToken"].(string); ok {
		user.ResetPasswordToken = token
	}
	if expires, ok := update["resetPasswordExpires"].(time.Time); ok {
		user.ResetPasswordExpires = &expires
	} else if v, ok := update["resetPasswordExpires"]; ok && v == nil {
		user.ResetPasswordExpires = nil
	}
	if password, ok := update["password"].(string); ok {
		user.Password = password
	}
	if lastLogin, ok := update["lastLogin"].(time.Time); ok {
		user.LastLogin = &lastLogin
	}
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	for i, u := range f.users {
		if u.ID.Hex() == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserRepo) List(ctx context.Context, base bson.M, params map[string]string) (apifeatures.PagedResult, error) {
	return apifeatures.PagedResult{}, nil
}

// fakeTokenStore tracks stored and revoked token ids.
type fakeTokenStore struct {
	stored  map[string]bool
	revoked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{stored: map[string]bool{}, revoked: map[string]bool{}}
}

func tokenKey(accountID, tokenID string) string { return accountID + ":" + tokenID }

func (f *fakeTokenStore) Store(ctx context.Context, accountID, tokenID string, expiry time.Duration) error {
	f.stored[tokenKey(accountID, tokenID)] = true
	return nil
}

func (f *fakeTokenStore) Exists(ctx context.Context, accountID, tokenID string) (bool, error) {
	return f.stored[tokenKey(accountID, tokenID)], nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, accountID, tokenID string) error {
	delete(f.stored, tokenKey(accountID, tokenID))
	f.revoked[tokenKey(accountID, tokenID)] = true
	return nil
}

// fakeMailer records the last mail and reports a scripted outcome.
type fakeMailer struct {
	sent []service.Mail
	fail bool
}

func (f *fakeMailer) Send(mail service.Mail) service.MailResult {
	f.sent = append(f.sent, mail)
	if f.fail {
		return service.MailResult{Success: false, Message: "Failed to send email"}
	}
	return service.MailResult{Success: true, Message: "Email sent successfully"}
}
