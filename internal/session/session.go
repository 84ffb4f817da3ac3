package session

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"fieldops/internal/domain"
	"fieldops/internal/domain/discount"
	"fieldops/internal/modules/quote"
)

// QuoteAPI is the remote quote service the session mutates through. The
// server is authoritative for every derived price; the session never
// computes prices for persistence.
type QuoteAPI interface {
	GetQuote(ctx context.Context, id string) (*domain.Quote, error)
	GetLeadQuote(ctx context.Context, leadID string) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, id string, req quote.UpdateQuoteRequest) (*domain.Quote, error)
	DeleteLineItem(ctx context.Context, id string) error
	AvailableDiscounts(ctx context.Context, companyID, planID string, isManager bool) ([]discount.Discount, error)
	GetAddon(ctx context.Context, companyID, addonID string) (*domain.AddonService, error)
}

// Publisher fans the canonical quote out after a successful mutation.
type Publisher interface {
	PublishQuote(leadID string, q *domain.Quote)
}

// QuoteSession is one user's live editing session over a lead's quote.
// All mutations go through the remote service and the response replaces
// the local quote wholesale, so local state can never drift from the
// server-computed prices. The session context is cancelled on Close,
// which aborts any in-flight request instead of letting its stale
// response land on a re-targeted session.
type QuoteSession struct {
	api QuoteAPI
	pub Publisher
	log *logrus.Entry

	locks     *SlotLocks
	isManager bool

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	quote *domain.Quote

	// quote-level fields staged to ride along with the next mutation
	stagedHome *string
	stagedYard *string
}

func NewQuoteSession(parent context.Context, api QuoteAPI, pub Publisher, isManager bool, log *logrus.Entry) *QuoteSession {
	ctx, cancel := context.WithCancel(parent)
	return &QuoteSession{
		api:       api,
		pub:       pub,
		log:       log,
		locks:     NewSlotLocks(),
		isManager: isManager,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Open loads the lead's quote, creating a draft server-side if needed.
func (s *QuoteSession) Open(leadID string) error {
	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	q, err := s.api.GetLeadQuote(s.ctx, leadID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.quote = q
	s.mu.Unlock()
	return nil
}

// Close tears the session down and aborts in-flight requests.
func (s *QuoteSession) Close() {
	s.cancel()
}

// Quote returns a snapshot of the local quote state.
func (s *QuoteSession) Quote() *domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneQuote(s.quote)
}

// ApplyRemote replaces local state with a broadcast quote. Last applied
// wins; there is no merge and no staleness detection.
func (s *QuoteSession) ApplyRemote(q *domain.Quote) {
	if q == nil {
		return
	}
	s.mu.Lock()
	if s.quote == nil || s.quote.ID == q.ID {
		s.quote = cloneQuote(q)
	}
	s.mu.Unlock()
}

// StageHomeSizeRange records a home-size change to accompany the next
// mutation in one request.
func (s *QuoteSession) StageHomeSizeRange(v string) {
	s.mu.Lock()
	s.stagedHome = &v
	s.mu.Unlock()
}

// StageYardSizeRange records a yard-size change to accompany the next
// mutation in one request.
func (s *QuoteSession) StageYardSizeRange(v string) {
	s.mu.Lock()
	s.stagedYard = &v
	s.mu.Unlock()
}

// UpsertLineItem sends one line-item patch plus any staged quote-level
// fields as a single update. A patch for a slot that already has a
// mutation in flight is dropped silently; a failed request leaves local
// state untouched. On success the server's quote replaces local state
// and is published to the lead channel.
func (s *QuoteSession) UpsertLineItem(patch quote.LineItemPatch) error {
	key := slotKey(patch)
	if !s.locks.TryAcquire(key) {
		return nil
	}
	defer s.locks.Release(key)

	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}

	s.mu.Lock()
	if s.quote == nil {
		s.mu.Unlock()
		return ErrQuoteNotLoaded
	}
	quoteID := s.quote.ID
	req := quote.UpdateQuoteRequest{LineItems: []quote.LineItemPatch{patch}}
	if s.stagedHome != nil {
		req.HomeSizeRange = quote.StringValue(*s.stagedHome)
	}
	if s.stagedYard != nil {
		req.YardSizeRange = quote.StringValue(*s.stagedYard)
	}
	s.mu.Unlock()

	updated, err := s.api.UpdateQuote(s.ctx, quoteID, req)
	if err != nil {
		s.log.WithError(err).WithField("slot", key).Warn("line item update failed")
		return err
	}

	s.mu.Lock()
	s.quote = updated
	s.stagedHome = nil
	s.stagedYard = nil
	s.mu.Unlock()

	s.publish(updated)
	return nil
}

// ToggleAddon flips an add-on line on or off. The flip is applied
// optimistically to local state and reverted if the request fails. When
// adding, the add-on's catalog metadata prices the optimistic line until
// the server's quote replaces it.
func (s *QuoteSession) ToggleAddon(addonID string) error {
	key := "addon:" + addonID
	if !s.locks.TryAcquire(key) {
		return nil
	}
	defer s.locks.Release(key)

	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}

	s.mu.Lock()
	if s.quote == nil {
		s.mu.Unlock()
		return ErrQuoteNotLoaded
	}
	companyID := s.quote.CompanyID
	adding := s.quote.AddonLine(addonID) == nil
	s.mu.Unlock()

	var meta *domain.AddonService
	if adding {
		m, err := s.api.GetAddon(s.ctx, companyID, addonID)
		if err != nil {
			s.log.WithError(err).WithField("addon_id", addonID).Debug("addon lookup failed, toggling without metadata")
		} else {
			meta = m
		}
	}

	s.mu.Lock()
	if s.quote == nil {
		s.mu.Unlock()
		return ErrQuoteNotLoaded
	}
	snapshot := cloneQuote(s.quote)
	quoteID := s.quote.ID

	// Capture the ID before the slice is compacted; removeLineLocked
	// rewrites LineItems in place, invalidating pointers into it.
	var removeID string
	if existing := s.quote.AddonLine(addonID); existing != nil {
		removeID = existing.ID
		s.removeLineLocked(removeID)
	} else {
		placeholder := domain.LineItem{
			QuoteID:        quoteID,
			Kind:           domain.LineAddon,
			DisplayOrder:   s.quote.MaxDisplayOrder() + 1,
			AddonServiceID: addonID,
		}
		if meta != nil {
			placeholder.AddonName = meta.AddonName
			placeholder.InitialPrice = meta.InitialPrice
			placeholder.RecurringPrice = meta.RecurringPrice
			placeholder.FinalInitialPrice = meta.InitialPrice
			placeholder.FinalRecurringPrice = meta.RecurringPrice
		}
		s.quote.LineItems = append(s.quote.LineItems, placeholder)
	}
	s.mu.Unlock()

	var updated *domain.Quote
	var err error
	if removeID != "" {
		if err = s.api.DeleteLineItem(s.ctx, removeID); err == nil {
			updated, err = s.api.GetQuote(s.ctx, quoteID)
		}
	} else {
		req := quote.UpdateQuoteRequest{LineItems: []quote.LineItemPatch{{
			AddonServiceID: addonID,
			DisplayOrder:   snapshot.MaxDisplayOrder() + 1,
		}}}
		updated, err = s.api.UpdateQuote(s.ctx, quoteID, req)
	}

	if err != nil {
		s.log.WithError(err).WithField("addon_id", addonID).Warn("addon toggle failed")
		s.mu.Lock()
		s.quote = snapshot
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.quote = updated
	s.mu.Unlock()

	s.publish(updated)
	return nil
}

// ClearPrimaryPest removes the primary pest. When no additional pests
// remain the server resets the quote to zero lines and zero totals.
func (s *QuoteSession) ClearPrimaryPest() error {
	if !s.locks.TryAcquire("quote") {
		return nil
	}
	defer s.locks.Release("quote")

	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}

	s.mu.Lock()
	if s.quote == nil {
		s.mu.Unlock()
		return ErrQuoteNotLoaded
	}
	quoteID := s.quote.ID
	s.mu.Unlock()

	updated, err := s.api.UpdateQuote(s.ctx, quoteID, quote.UpdateQuoteRequest{
		PrimaryPest: quote.NullValue(),
	})
	if err != nil {
		s.log.WithError(err).Warn("primary pest clear failed")
		return err
	}

	s.mu.Lock()
	s.quote = updated
	s.mu.Unlock()

	s.publish(updated)
	return nil
}

// EligibleDiscounts lists the discounts the current user may attach to
// the plan. The server is authoritative; on failure the session degrades
// to no discount options rather than blocking the line-item flow.
func (s *QuoteSession) EligibleDiscounts(planID string) []discount.Discount {
	s.mu.Lock()
	if s.quote == nil {
		s.mu.Unlock()
		return nil
	}
	companyID := s.quote.CompanyID
	s.mu.Unlock()

	discounts, err := s.api.AvailableDiscounts(s.ctx, companyID, planID, s.isManager)
	if err != nil {
		s.log.WithError(err).WithField("plan_id", planID).Warn("discount lookup failed, continuing without")
		return []discount.Discount{}
	}
	return discounts
}

func (s *QuoteSession) publish(q *domain.Quote) {
	if s.pub != nil && q != nil {
		s.pub.PublishQuote(q.LeadID, q)
	}
}

// removeLineLocked drops a line from local state. Caller holds s.mu.
func (s *QuoteSession) removeLineLocked(lineID string) {
	lines := s.quote.LineItems[:0]
	for _, li := range s.quote.LineItems {
		if li.ID != lineID {
			lines = append(lines, li)
		}
	}
	s.quote.LineItems = lines
}

func slotKey(patch quote.LineItemPatch) string {
	if patch.AddonServiceID != "" {
		return "addon:" + patch.AddonServiceID
	}
	return "slot:" + strconv.Itoa(patch.DisplayOrder)
}

func cloneQuote(q *domain.Quote) *domain.Quote {
	if q == nil {
		return nil
	}
	cp := *q
	cp.LineItems = append([]domain.LineItem(nil), q.LineItems...)
	cp.AdditionalPests = append([]string(nil), q.AdditionalPests...)
	return &cp
}
