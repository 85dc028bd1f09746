package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"script9/constants"
	apperrors "script9/errors"
	"script9/models"
	"script9/services/notification"
	"script9/types"
	"script9/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func pageOf[T any](items []T, page types.Page) []T {
	start, end := page.Window(len(items))
	return items[start:end]
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	err      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking not found")
	}
	cp := *b
	return &cp, nil
}

// Create enforces the same exclusion rule as the bookings_no_overlap constraint.
func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.bookings {
		if existing.PropertyID == booking.PropertyID && existing.Status.IsActive() && existing.Overlaps(booking.StartTime, booking.EndTime) {
			return apperrors.BadRequest(apperrors.ErrCodeSlotUnavailable, "time slot is not available")
		}
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.CreatedAt = time.Now()
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) put(b models.Booking) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	r.bookings[b.ID] = &b
	cp := b
	return &cp
}

func (r *fakeBookingRepo) status(id string) models.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return apperrors.BadRequest(apperrors.ErrCodeInvalidTransition, "booking status changed concurrently")
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) HasOverlap(_ context.Context, propertyID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func matchBooking(b *models.Booking, f types.BookingFilter) bool {
	if f.ParticipantID != "" && b.GuestID != f.ParticipantID && b.HostID != f.ParticipantID {
		return false
	}
	if f.GuestID != "" && b.GuestID != f.GuestID {
		return false
	}
	if f.HostID != "" && b.HostID != f.HostID {
		return false
	}
	if f.PropertyID != "" && b.PropertyID != f.PropertyID {
		return false
	}
	if f.Status != "" && string(b.Status) != f.Status {
		return false
	}
	if f.From != nil && b.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && b.StartTime.After(*f.To) {
		return false
	}
	return true
}

func (r *fakeBookingRepo) filter(f types.BookingFilter) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if matchBooking(b, f) {
			out = append(out, *b)
		}
	}
	return out
}

func (r *fakeBookingRepo) Search(_ context.Context, f types.BookingFilter, page types.Page) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	all := r.filter(f)
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakeBookingRepo) Stats(_ context.Context, f types.BookingFilter) (types.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return types.BookingStats{}, r.err
	}
	var st types.BookingStats
	for _, b := range r.filter(f) {
		st.Total++
		switch b.Status {
		case models.BookingStatusPending:
			st.Pending++
		case models.BookingStatusConfirmed:
			st.Confirmed++
			st.Revenue += b.TotalPrice
		case models.BookingStatusCompleted:
			st.Completed++
			st.Revenue += b.TotalPrice
		case models.BookingStatusCancelled:
			st.Cancelled++
		}
	}
	st.Active = st.Pending + st.Confirmed
	st.Revenue = utils.RoundCents(st.Revenue)
	return st, nil
}

func (r *fakeBookingRepo) Upcoming(_ context.Context, f types.BookingFilter, now time.Time, limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.filter(f) {
		if b.Status.IsActive() && b.StartTime.After(now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) FindEndedConfirmed(_ context.Context, now time.Time, limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusConfirmed && b.EndTime.Before(now) {
			out = append(out, *b)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*models.Property
	order      []string
}

func newFakePropertyRepo(props ...models.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{properties: make(map[string]*models.Property)}
	for _, p := range props {
		cp := p
		r.properties[p.ID] = &cp
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, apperrors.NotFound("property not found")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.properties[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePropertyRepo) Save(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) matching(f types.PropertyFilter) []models.Property {
	var out []models.Property
	for _, id := range r.order {
		p := r.properties[id]
		if !p.IsActive {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.HostID != "" && p.HostID != f.HostID {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (r *fakePropertyRepo) List(_ context.Context, f types.PropertyFilter, page types.Page) ([]models.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(f)
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakePropertyRepo) ListAll(_ context.Context, f types.PropertyFilter) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(f), nil
}

func (r *fakePropertyRepo) AppendImage(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return apperrors.NotFound("property not found")
	}
	p.Images = append(p.Images, url)
	return nil
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*models.Conversation
	// raceWinner is inserted just before Create runs, simulating a concurrent creator.
	raceWinner *models.Conversation
	err        error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[string]*models.Conversation)}
}

func (r *fakeConversationRepo) FindByID(_ context.Context, id string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, apperrors.NotFound("conversation not found")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) FindByBookingID(_ context.Context, bookingID string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.BookingID == bookingID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("conversation not found")
}

func (r *fakeConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceWinner != nil {
		r.conversations[r.raceWinner.ID] = r.raceWinner
		r.raceWinner = nil
	}
	for _, existing := range r.conversations {
		if existing.BookingID == c.BookingID {
			return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeDuplicate, "conversation already exists", nil)
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.conversations[c.ID] = &cp
	return nil
}

func (r *fakeConversationRepo) ListForUser(_ context.Context, userID string, page types.Page) ([]models.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].LastMessageAt, all[j].LastMessageAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakeConversationRepo) ResetUnread(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[conversationID]
	if !ok {
		return apperrors.NotFound("conversation not found")
	}
	if c.GuestID == userID {
		c.GuestUnreadCount = 0
	}
	if c.HostID == userID {
		c.HostUnreadCount = 0
	}
	return nil
}

func (r *fakeConversationRepo) UnreadTotal(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var total int64
	for _, c := range r.conversations {
		if c.GuestID == userID {
			total += int64(c.GuestUnreadCount)
		}
		if c.HostID == userID {
			total += int64(c.HostUnreadCount)
		}
	}
	return total, nil
}

// afterInsert mirrors the messages_after_insert trigger.
func (r *fakeConversationRepo) afterInsert(m *models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[m.ConversationID]
	if !ok {
		return
	}
	at := m.CreatedAt
	c.LastMessageAt = &at
	c.LastMessagePreview = utils.TruncateRunes(m.MessageText, constants.ConversationPreviewLength)
	if m.SenderID == c.GuestID {
		c.HostUnreadCount++
	} else {
		c.GuestUnreadCount++
	}
}

type fakeMessageRepo struct {
	mu            sync.Mutex
	messages      []models.Message
	conversations *fakeConversationRepo
	clock         time.Time
}

func newFakeMessageRepo(conversations *fakeConversationRepo) *fakeMessageRepo {
	return &fakeMessageRepo{conversations: conversations, clock: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.clock = r.clock.Add(time.Second)
	m.CreatedAt = r.clock
	r.messages = append(r.messages, *m)
	r.mu.Unlock()

	r.conversations.afterInsert(m)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string, page types.Page) ([]models.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			all = append(all, m)
		}
	}
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ConversationID == conversationID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			readAt := at
			m.ReadAt = &readAt
			n++
		}
	}
	return n, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
	// raceBooking makes Create fail as if a concurrent insert won the unique index.
	raceBooking string
	ratingCalls int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.NotFound("review not found")
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) ExistsForBooking(_ context.Context, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv.BookingID == r.raceBooking {
		return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeDuplicate, "review already exists", nil)
	}
	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeDuplicate, "review already exists", nil)
		}
	}
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Save(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return apperrors.NotFound("review not found")
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListByProperty(_ context.Context, propertyID string, page types.Page) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Review
	for _, rv := range r.reviews {
		if rv.PropertyID == propertyID {
			all = append(all, *rv)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakeReviewRepo) ListRatings(_ context.Context, propertyID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratingCalls++
	var all []models.Review
	for _, rv := range r.reviews {
		if rv.PropertyID == propertyID {
			all = append(all, *rv)
		}
	}
	return all, nil
}

type fakeChatHistoryRepo struct {
	mu      sync.Mutex
	entries []models.ChatHistory
	err     error
}

func (r *fakeChatHistoryRepo) Create(_ context.Context, entries []models.ChatHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entries...)
	return nil
}

type sentEvent struct {
	UserID string
	Event  notification.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) NotifyUser(userID string, event notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{UserID: userID, Event: event})
	return nil
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ids []string
	for _, e := range n.events {
		ids = append(ids, e.UserID)
	}
	return ids
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, target interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, target)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}
