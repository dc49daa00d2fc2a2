// File: services/assistant/service.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	reservationRepo "roomly/database/repository/reservation"
	resourceRepo "roomly/database/repository/resource"
	"roomly/models"
	"roomly/services/booking"
	"roomly/services/dialog"
	"roomly/services/nlu"
	"roomly/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultAssistantService orchestrates one dialog turn: NLU, session state,
// matching and commit. Turns for the same session are serialized through a
// per-session mutex; different sessions run fully independently.
type DefaultAssistantService struct {
	classifier   nlu.Classifier
	extractor    nlu.Extractor
	parser       *nlu.TemporalParser
	tracker      *dialog.Tracker
	sessions     dialog.SessionStore
	matcher      booking.Matcher
	committer    booking.Committer
	reservations reservationRepo.ReservationRepository
	resources    resourceRepo.ResourceRepository
	notifier     booking.Notifier

	locks sync.Map // session id -> *sync.Mutex
	now   func() time.Time
}

// NewDefaultAssistantService wires the orchestrator. notifier may be nil.
func NewDefaultAssistantService(
	classifier nlu.Classifier,
	extractor nlu.Extractor,
	parser *nlu.TemporalParser,
	tracker *dialog.Tracker,
	sessions dialog.SessionStore,
	matcher booking.Matcher,
	committer booking.Committer,
	reservations reservationRepo.ReservationRepository,
	resources resourceRepo.ResourceRepository,
	notifier booking.Notifier,
) *DefaultAssistantService {
	return &DefaultAssistantService{
		classifier:   classifier,
		extractor:    extractor,
		parser:       parser,
		tracker:      tracker,
		sessions:     sessions,
		matcher:      matcher,
		committer:    committer,
		reservations: reservations,
		resources:    resources,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *DefaultAssistantService) ProcessMessage(ctx context.Context, userID string, req models.ChatRequest) *models.ChatResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sc, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Sugar().Warnf("session load failed for %s, starting fresh: %v", sessionID, err)
		sc = &models.SessionContext{}
	}
	if sc.TimeInfo == nil && len(sc.Entities) == 0 {
		s.rehydrate(sc, req.History)
	}

	intent := s.classifier.Classify(req.Message)
	entities := s.extractor.Extract(req.Message)
	timeInfo := s.parser.Parse(req.Message, s.now())

	utils.GetLogger().Sugar().Infow("dialog turn",
		"session", sessionID, "intent", intent.Intent, "confidence", intent.Confidence)

	var resp *models.ChatResponse
	switch intent.Intent {
	case models.IntentReservation:
		resp = s.handleReservation(ctx, userID, sessionID, entities, &timeInfo, sc)
	case models.IntentQuery:
		resp = s.handleQuery(ctx, userID)
	case models.IntentCancel:
		resp = s.handleCancel(ctx, userID, req.Message)
	case models.IntentModify:
		resp = s.handleModify()
	case models.IntentHelp:
		resp = s.handleHelp()
	default:
		resp = s.handleChat(req.Message)
	}

	resp.SessionID = sessionID
	resp.Intent = intent.Intent
	return resp
}

func (s *DefaultAssistantService) sessionLock(sessionID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// rehydrate rebuilds session state from the client-supplied prior turns. It
// only runs when the server-side session is empty (expired or lost), so the
// session store stays the source of truth once it holds data.
func (s *DefaultAssistantService) rehydrate(sc *models.SessionContext, history []models.Turn) {
	for _, turn := range history {
		if turn.Role != models.TurnRoleUser || strings.TrimSpace(turn.Text) == "" {
			continue
		}
		ti := s.parser.Parse(turn.Text, s.now())
		s.tracker.Update(s.extractor.Extract(turn.Text), &ti, sc)
	}
}

func (s *DefaultAssistantService) handleReservation(ctx context.Context, userID, sessionID string, entities models.EntitySet, timeInfo *models.TimeInfo, sc *models.SessionContext) *models.ChatResponse {
	draft, completeness := s.tracker.Update(entities, timeInfo, sc)
	sc.Intent = models.IntentReservation

	if !completeness.IsComplete {
		prompt, suggestions := s.tracker.Prompt(completeness.MissingFields)
		s.persistSession(ctx, sessionID, sc)
		return &models.ChatResponse{
			Success:       true,
			Response:      prompt,
			MissingFields: completeness.MissingFields,
			Suggestions:   suggestions,
		}
	}

	res, room, err := s.committer.Commit(ctx, draft, userID)
	switch {
	case errors.Is(err, booking.ErrNoRoom):
		alternatives, altErr := s.matcher.FindAlternatives(ctx, draft.StartTime, draft.EndTime, draft.AttendeeCount, draft.Requirements)
		if altErr != nil {
			utils.GetLogger().Sugar().Warnf("alternatives search failed: %v", altErr)
		}
		// Keep the session so the user can pick an alternative without
		// restating everything.
		s.persistSession(ctx, sessionID, sc)
		return &models.ChatResponse{
			Success: false,
			Response: fmt.Sprintf("抱歉，%s到%s没有合适的会议室可用",
				draft.StartTime.Format("2006-01-02 15:04"), draft.EndTime.Format("15:04")),
			Alternatives: alternatives,
			Suggestions:  []string{"请选择其他时间段或查看推荐的可用时间"},
		}

	case errors.Is(err, booking.ErrSlotTaken):
		s.persistSession(ctx, sessionID, sc)
		return &models.ChatResponse{
			Success:     false,
			Response:    "抱歉，该时间段刚刚被其他人预订，请换一个时间再试",
			Suggestions: []string{"明天同一时间", "查看我的预约"},
		}

	case err != nil:
		utils.GetLogger().Sugar().Errorf("reservation commit failed: %v", err)
		return &models.ChatResponse{
			Success:  false,
			Response: "创建预约时发生错误，请稍后重试",
		}
	}

	// The draft is now a reservation; drop the accumulated session state.
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		utils.GetLogger().Sugar().Warnf("session clear failed for %s: %v", sessionID, err)
	}

	return &models.ChatResponse{
		Success: true,
		Response: fmt.Sprintf("预约创建成功！预约编号：%s\n会议室:%s\n时间：%s - %s\n状态：已自动审批通过",
			res.ReservationNumber, room.Name,
			res.StartTime.Format("2006-01-02 15:04"), res.EndTime.Format("15:04")),
		ReservationCreated: true,
		Reservation: &models.ReservationSummary{
			ID:           res.ID,
			Number:       res.ReservationNumber,
			ResourceName: room.Name,
			StartTime:    res.StartTime.Format("2006-01-02 15:04"),
			EndTime:      res.EndTime.Format("15:04"),
			Status:       res.Status,
		},
	}
}

func (s *DefaultAssistantService) handleQuery(ctx context.Context, userID string) *models.ChatResponse {
	reservations, err := s.reservations.ListByUser(ctx, userID, 10)
	if err != nil {
		utils.GetLogger().Sugar().Errorf("reservation query failed: %v", err)
		return &models.ChatResponse{
			Success:  false,
			Response: "查询预约时发生错误，请稍后重试",
		}
	}
	if len(reservations) == 0 {
		return &models.ChatResponse{
			Success:     true,
			Response:    "您暂时没有预约记录",
			Suggestions: []string{"预约会议室", "帮助"},
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "找到%d条预约记录：\n", len(reservations))
	for i, res := range reservations {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, res.Title, s.resourceName(ctx, res.ResourceID))
		fmt.Fprintf(&sb, "   时间：%s - %s\n", res.StartTime.Format("2006-01-02 15:04"), res.EndTime.Format("15:04"))
		fmt.Fprintf(&sb, "   状态：%s\n\n", res.Status)
	}

	return &models.ChatResponse{
		Success:     true,
		Response:    strings.TrimSpace(sb.String()),
		Suggestions: []string{"取消预约", "预约会议室"},
	}
}

func (s *DefaultAssistantService) handleCancel(ctx context.Context, userID, message string) *models.ChatResponse {
	ref := extractReservationRef(message)
	if ref == "" {
		return s.listCancellable(ctx, userID)
	}

	res, err := s.reservations.UpdateStatus(ctx, ref, userID, models.StatusCancelled)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.ChatResponse{
			Success:     false,
			Response:    "未找到可取消的预约，请检查预约编号。",
			Suggestions: []string{"查看我的预约"},
		}
	}
	if err != nil {
		utils.GetLogger().Sugar().Errorf("cancel failed for %s: %v", ref, err)
		return &models.ChatResponse{
			Success:  false,
			Response: "取消预约时发生错误，请稍后重试",
		}
	}

	if s.notifier != nil {
		go func(res models.Reservation) {
			nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifier.NotifyStatusChange(nctx, &res, models.StatusApproved, models.StatusCancelled); err != nil {
				utils.GetLogger().Sugar().Warnf("cancel notification failed for %s: %v", res.ReservationNumber, err)
			}
		}(*res)
	}

	return &models.ChatResponse{
		Success: true,
		Response: fmt.Sprintf("预约 #%s 已成功取消。\n原预约：%s\n时间：%s",
			res.ReservationNumber, res.Title, res.StartTime.Format("2006-01-02 15:04")),
		Suggestions: []string{"查看其他预约", "创建新预约"},
	}
}

func (s *DefaultAssistantService) listCancellable(ctx context.Context, userID string) *models.ChatResponse {
	active, err := s.reservations.ListCancellable(ctx, userID, s.now())
	if err != nil {
		utils.GetLogger().Sugar().Errorf("cancellable list failed: %v", err)
		return &models.ChatResponse{
			Success:  false,
			Response: "查询预约时发生错误，请稍后重试",
		}
	}
	if len(active) == 0 {
		return &models.ChatResponse{
			Success:     true,
			Response:    "您没有可以取消的预约。",
			Suggestions: []string{"查看所有预约", "创建新预约"},
		}
	}

	var sb strings.Builder
	sb.WriteString("请选择要取消的预约：\n\n")
	var suggestions []string
	for _, res := range active {
		fmt.Fprintf(&sb, "#%s %s\n", res.ReservationNumber, res.Title)
		fmt.Fprintf(&sb, "时间：%s - %s\n\n", res.StartTime.Format("01-02 15:04"), res.EndTime.Format("15:04"))
		if len(suggestions) < 3 {
			suggestions = append(suggestions, fmt.Sprintf("取消预约 #%s", res.ReservationNumber))
		}
	}

	return &models.ChatResponse{
		Success:     true,
		Response:    strings.TrimSpace(sb.String()),
		Suggestions: suggestions,
	}
}

func (s *DefaultAssistantService) handleModify() *models.ChatResponse {
	return &models.ChatResponse{
		Success:     true,
		Response:    "请提供要修改的预约编号和新的时间，例如：\"修改预约 #250903001 到明天下午3点\"。也可以先取消原预约再重新预约。",
		Suggestions: []string{"查看我的预约", "取消预约"},
	}
}

func (s *DefaultAssistantService) handleHelp() *models.ChatResponse {
	return &models.ChatResponse{
		Success: true,
		Response: "我可以帮助您：\n" +
			"1. 预约会议室 - 说\"我要预约明天下午2点的会议室\"\n" +
			"2. 查询预约 - 说\"查看我的预约\"\n" +
			"3. 取消预约 - 说\"取消预约\"\n" +
			"4. 修改预约 - 说\"修改预约时间\"",
		Suggestions: []string{"预约会议室", "查看我的预约", "取消预约", "修改预约"},
	}
}

func (s *DefaultAssistantService) handleChat(message string) *models.ChatResponse {
	var response string
	switch {
	case containsAny(message, "你好", "您好", "hi", "hello"):
		response = "您好！我是智能预约助手，可以帮您预约会议室。有什么需要帮助的吗？"
	case containsAny(message, "天气", "温度"):
		response = "我是预约助手，无法查询天气信息。不过我可以帮您预约会议室哦！"
	case containsAny(message, "谢谢", "感谢"):
		response = "不客气！如果需要预约会议室，随时告诉我。"
	case containsAny(message, "再见", "拜拜"):
		response = "再见！有预约需求时欢迎随时联系我。"
	default:
		response = "我是智能预约助手，主要帮助您预约会议室。您可以说\"我要预约明天下午2点的会议室\"来开始预约。"
	}
	return &models.ChatResponse{
		Success:     true,
		Response:    response,
		Suggestions: []string{"预约会议室", "查看我的预约", "帮助"},
	}
}

func (s *DefaultAssistantService) persistSession(ctx context.Context, sessionID string, sc *models.SessionContext) {
	if err := s.sessions.Set(ctx, sessionID, sc); err != nil {
		utils.GetLogger().Sugar().Warnf("session persist failed for %s: %v", sessionID, err)
	}
}

func (s *DefaultAssistantService) resourceName(ctx context.Context, resourceID string) string {
	if resourceID == "" {
		return "未知资源"
	}
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return "未知资源"
	}
	return res.Name
}

var reservationRefRe = regexp.MustCompile(`#\s*(\w+)|\b(\d{9})\b`)

// extractReservationRef pulls a reservation identifier out of free text:
// either a "#..." reference or a bare nine-digit reservation number.
func extractReservationRef(message string) string {
	m := reservationRefRe.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

func containsAny(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
