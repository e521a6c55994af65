package game

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/canvas"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/logger"
)

const (
	timerKeyPhase  = "phase"
	graceKeyPrefix = "grace:"
)

const (
	minPlayersToStart = 3
	roundScore        = 100

	guessDuration     = 20 * time.Second
	revealDuration    = 5 * time.Second
	postEndDuration   = 30 * time.Second
	graceDuration     = 10 * time.Second
	ticketMaxAge      = 2 * time.Hour
	storeCallDeadline = 3 * time.Second
)

// fallbackWords keeps games playable when the word pool cannot be
// reached or runs dry.
var fallbackWords = []string{
	"apple", "bicycle", "castle", "dragon", "elephant",
	"guitar", "island", "lighthouse", "penguin", "volcano",
}

func DefaultRoomSettings() domain.RoomSettings {
	return domain.RoomSettings{MaxPlayers: 8, TotalRounds: 3, DrawTime: 60, WordsTheme: "default"}
}

func NewRoom(id string, settings domain.RoomSettings, store RoomStore, wordSource WordSource, tickets TicketIssuer) *room {
	return &room{
		id:            id,
		phase:         domain.PHASE_WAITING,
		settings:      settings,
		members:       make([]*roomMember, 0, settings.MaxPlayers),
		replica:       canvas.NewReplica(id),
		timers:        NewTimerCoordinator(),
		now:           time.Now(),
		store:         store,
		wordSource:    wordSource,
		tickets:       tickets,
		inbox:         make(chan clientPacketEnvelope, 1024),
		ticks:         make(chan time.Time, 24),
		pingPlayers:   make(chan struct{}, 1),
		removals:      make(chan Player, 64),
		joinRequests:  make(chan roomJoinRequest, 32),
		done:          make(chan struct{}),
		dataSendTasks: make([]dataSendTask, 0, 64),
		pingSendTasks: make([]pingSendTask, 0, 16),
	}
}

func logSendFailure(roomId, playerId string, err error) {
	logger.Debugf("room %s: dropping write to %s: %v", roomId, playerId, err)
}

func (r *room) storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeCallDeadline)
}

// --- lookups and send helpers ---

func (r *room) memberById(playerId string) *roomMember {
	for _, m := range r.members {
		if m.record.PlayerID == playerId {
			return m
		}
	}
	return nil
}

func (r *room) connectedCount() int {
	n := 0
	for _, m := range r.members {
		if m.record.Status == domain.STATUS_CONNECTED {
			n++
		}
	}
	return n
}

func (r *room) connectedIds() []string {
	ids := make([]string, 0, len(r.members))
	for _, m := range r.members {
		if m.record.Status == domain.STATUS_CONNECTED {
			ids = append(ids, m.record.PlayerID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *room) snapshot() domain.RoomSnapshot {
	players := make([]domain.Player, 0, len(r.members))
	for _, m := range r.members {
		players = append(players, m.record)
	}
	return domain.RoomSnapshot{
		RoomID:       r.id,
		HostID:       r.hostId,
		Status:       r.phase,
		CurrentRound: r.round,
		Settings:     r.settings,
		Players:      players,
	}
}

func (r *room) queueSend(to Player, data []byte) {
	r.dataSendTasks = append(r.dataSendTasks, dataSendTask{to: to, data: data})
}

func (r *room) queueBroadcast(data []byte) {
	for _, m := range r.members {
		if m.record.Status == domain.STATUS_CONNECTED {
			r.queueSend(m.conn, data)
		}
	}
}

func (r *room) queueBroadcastExcept(playerId string, data []byte) {
	for _, m := range r.members {
		if m.record.Status == domain.STATUS_CONNECTED && m.record.PlayerID != playerId {
			r.queueSend(m.conn, data)
		}
	}
}

func (r *room) queueError(to Player, err error) {
	r.queueSend(to, domain.MakePacketError(err))
}

func (r *room) queuePingSweep() {
	for _, m := range r.members {
		if m.record.Status == domain.STATUS_CONNECTED {
			r.pingSendTasks = append(r.pingSendTasks, pingSendTask{to: m.conn})
		}
	}
}

func (r *room) updateDescription() {
	if r.parentLobby != nil {
		r.parentLobby.RequestUpdateDescription(r.Description())
	}
}

// --- join / reconnect ---

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	if jreq.reconnectId != "" {
		m := r.memberById(jreq.reconnectId)
		if m == nil {
			// The grace window already released this seat. The
			// ticket is stale; the client joins fresh with a
			// nickname instead.
			jreq.errChan <- domain.ErrPlayerNotFound
			close(jreq.errChan)
			return
		}
		if m.record.Status == domain.STATUS_CONNECTED {
			// The seated socket is a zombie the client gave up on.
			m.conn.CancelAndRelease()
		}
		r.handleReconnect(m, jreq)
		return
	}

	playerId := jreq.player.Id()

	// A second connection for an id already seated replaces the old
	// one; the stale socket is usually a zombie the client gave up on.
	if existing := r.memberById(playerId); existing != nil {
		r.finalizeRemoval(playerId)
	}

	if len(r.members) >= r.settings.MaxPlayers {
		jreq.errChan <- ErrRoomFull
		close(jreq.errChan)
		return
	}

	record := domain.Player{
		PlayerID:     playerId,
		Nickname:     jreq.player.Nickname(),
		Status:       domain.STATUS_CONNECTED,
		ProfileImage: jreq.player.ProfileImage(),
	}

	becomesHost := len(r.members) == 0

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.AddPlayer(ctx, r.id, record); err != nil {
		logger.Criticalf("room %s: persisting join of %s: %v", r.id, playerId, err)
		jreq.errChan <- domain.UnexpectedStorageError
		close(jreq.errChan)
		return
	}
	if becomesHost {
		r.hostId = playerId
		if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
			logger.Criticalf("room %s: persisting host %s: %v", r.id, playerId, err)
		}
	}

	m := &roomMember{conn: jreq.player, record: record}
	r.members = append(r.members, m)
	jreq.player.SetRoom(r)

	snap := r.snapshot()
	r.queueBroadcastExcept(playerId, domain.MakePacketPlayerJoined(record, snap))
	r.queueSend(jreq.player, domain.MakePacketJoinedRoom(r.joinedPayload(m)))

	r.updateDescription()
	close(jreq.errChan)
}

func (r *room) handleReconnect(m *roomMember, jreq roomJoinRequest) {
	r.timers.Disarm(graceKeyPrefix + m.record.PlayerID)
	m.record.Status = domain.STATUS_CONNECTED

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdatePlayer(ctx, r.id, m.record); err != nil {
		logger.Criticalf("room %s: persisting reconnect of %s: %v", r.id, m.record.PlayerID, err)
	}

	m.conn = jreq.player
	jreq.player.SetRoom(r)

	// The rejoining peer's replica is stale, so it gets the full
	// canvas, not deltas.
	r.queueSend(jreq.player, domain.MakePacketJoinedRoom(r.joinedPayload(m)))
	r.queueBroadcastExcept(m.record.PlayerID, domain.MakePacketPlayerJoined(m.record, r.snapshot()))
	close(jreq.errChan)
}

func (r *room) joinedPayload(m *roomMember) domain.JoinedRoomPayload {
	ticket, err := r.tickets.Issue(r.id, m.record.PlayerID, r.now)
	if err != nil {
		logger.Criticalf("room %s: issuing reconnect ticket: %v", r.id, err)
	}
	payload := domain.JoinedRoomPayload{
		You:            m.record,
		Room:           r.snapshot(),
		ReconnectToken: ticket,
	}
	if r.phase != domain.PHASE_WAITING {
		payload.Canvas = r.replica.Snapshot()
		payload.RemainingMs = r.timers.Remaining(timerKeyPhase, r.now).Milliseconds()
	}
	return payload
}

// --- inbound packets ---

func (r *room) handleClientEnvelope(e clientPacketEnvelope) {
	switch e.envelope.Type {
	case domain.PacketUpdateSettings:
		patch, err := domain.DecodePayload[domain.SettingsPatch](e.envelope)
		if err != nil {
			r.queueError(e.from, domain.ErrBadRequest)
			return
		}
		r.handleSettingsEnvelope(patch, e.from)
	case domain.PacketStartGame:
		r.handleStartGameEnvelope(e.from)
	case domain.PacketSubmitAnswer:
		answer, err := domain.DecodePayload[domain.AnswerPayload](e.envelope)
		if err != nil {
			r.queueError(e.from, domain.ErrBadRequest)
			return
		}
		r.handleAnswerEnvelope(answer, e.from)
	case domain.PacketDrawDelta, domain.PacketUndo, domain.PacketRedo:
		delta, err := domain.DecodePayload[domain.RegisterDelta](e.envelope)
		if err != nil {
			r.queueError(e.from, domain.ErrBadRequest)
			return
		}
		r.handleDrawDeltaEnvelope(delta, e.from)
	case domain.PacketChat:
		msg, err := domain.DecodePayload[domain.ChatPayload](e.envelope)
		if err != nil {
			r.queueError(e.from, domain.ErrBadRequest)
			return
		}
		r.handleChatEnvelope(msg, e.from)
	default:
		r.queueError(e.from, domain.ErrBadRequest)
	}
}

func (r *room) handleSettingsEnvelope(patch domain.SettingsPatch, from Player) {
	if r.phase != domain.PHASE_WAITING {
		r.queueError(from, domain.ErrGameAlreadyStarted)
		return
	}
	if from.Id() != r.hostId {
		r.queueError(from, domain.ErrNotHost)
		return
	}

	next := patch.ApplyTo(r.settings)
	if next.MaxPlayers < 2 || next.MaxPlayers > 20 ||
		next.TotalRounds < 1 || next.TotalRounds > 10 ||
		next.DrawTime < 10 || next.DrawTime > 300 ||
		next.MaxPlayers < len(r.members) {
		r.queueError(from, domain.ErrValidation)
		return
	}

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdateSettings(ctx, r.id, next); err != nil {
		logger.Criticalf("room %s: persisting settings: %v", r.id, err)
		r.queueError(from, domain.UnexpectedStorageError)
		return
	}

	r.settings = next
	r.queueBroadcast(domain.MakePacketSettingsUpdated(next))
	r.updateDescription()
}

func (r *room) handleStartGameEnvelope(from Player) {
	if r.phase != domain.PHASE_WAITING {
		r.queueError(from, domain.ErrGameAlreadyStarted)
		return
	}
	if from.Id() != r.hostId {
		r.queueError(from, domain.ErrNotHost)
		return
	}
	if r.connectedCount() < minPlayersToStart {
		r.queueError(from, domain.ErrNotEnoughPlayers)
		return
	}

	ctx, cancel := r.storeCtx()
	words, err := r.wordSource.FetchWords(ctx, r.settings.WordsTheme, r.settings.TotalRounds)
	cancel()
	if err != nil || len(words) == 0 {
		logger.Warningf("room %s: word pool unavailable, using fallback: %v", r.id, err)
		words = fallbackWords
	}
	r.words = words

	if !r.startRound(from) {
		return
	}
	r.updateDescription()
}

// startRound assigns roles, picks the word, persists the transition and
// arms the draw timer. It reports false when the store write failed and
// the room stayed in its previous phase.
func (r *room) startRound(origin Player) bool {
	ids := r.connectedIds()
	n := len(ids)
	if n == 0 {
		return false
	}

	nextRound := r.round + 1

	pi := (nextRound - 1) % n
	if ids[pi] == r.prevPainter && n >= 2 {
		pi = (pi + 1) % n
	}
	di := (pi + 1) % n
	if ids[di] == r.prevDevil && n >= 4 {
		di = (di + 1) % n
	}
	painter, devil := ids[pi], ids[di]

	word := r.wordForRound(nextRound)

	prevPhase, prevRound, prevWord := r.phase, r.round, r.currentWord
	r.phase = domain.PHASE_DRAWING
	r.round = nextRound
	r.currentWord = word
	r.winnerId = ""

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
		r.phase, r.round, r.currentWord = prevPhase, prevRound, prevWord
		logger.Criticalf("room %s: persisting round start: %v", r.id, err)
		if origin != nil {
			r.queueError(origin, domain.UnexpectedStorageError)
		}
		return false
	}

	roles := make(map[string]domain.Role, len(r.members))
	for _, m := range r.members {
		switch m.record.PlayerID {
		case painter:
			m.record.Role = domain.ROLE_PAINTER
		case devil:
			m.record.Role = domain.ROLE_DEVIL
		default:
			m.record.Role = domain.ROLE_GUESSER
		}
		roles[m.record.PlayerID] = m.record.Role
		if err := r.store.UpdatePlayer(ctx, r.id, m.record); err != nil {
			logger.Warningf("room %s: persisting role of %s: %v", r.id, m.record.PlayerID, err)
		}
	}
	r.prevPainter, r.prevDevil = painter, devil

	r.replica = canvas.NewReplica(r.id)
	r.artifact = nil

	drawTime := time.Duration(r.settings.DrawTime) * time.Second
	r.timers.Arm(timerKeyPhase, drawTime, r.now)

	for _, m := range r.members {
		if m.record.Status != domain.STATUS_CONNECTED {
			continue
		}
		payload := domain.RoundStartedPayload{
			Round:      r.round,
			Roles:      roles,
			DrawTimeMs: drawTime.Milliseconds(),
		}
		// Only the pair allowed to draw learns the word.
		if m.record.Role == domain.ROLE_PAINTER || m.record.Role == domain.ROLE_DEVIL {
			payload.Word = word
		}
		r.queueSend(m.conn, domain.MakePacketRoundStarted(payload))
	}
	return true
}

func (r *room) wordForRound(round int) string {
	if len(r.words) == 0 {
		r.words = fallbackWords
	}
	return r.words[(round-1)%len(r.words)]
}

func (r *room) handleDrawDeltaEnvelope(delta domain.RegisterDelta, from Player) {
	if r.phase != domain.PHASE_DRAWING {
		r.queueError(from, domain.ErrInvalidTurn)
		return
	}
	m := r.memberById(from.Id())
	if m == nil || (m.record.Role != domain.ROLE_PAINTER && m.record.Role != domain.ROLE_DEVIL) {
		r.queueError(from, domain.ErrInvalidTurn)
		return
	}
	// The sender must own at least one axis of the write. A recolor by
	// the other drawer moves Owner to them while an undo of the same
	// stroke still carries the sender on the activity axis.
	if delta.State.Owner != from.Id() && delta.State.ActiveOwner != from.Id() {
		r.queueError(from, domain.ErrBadRequest)
		return
	}

	res := r.replica.MergeOne(delta.StrokeID, delta.State)
	if !res.Updated {
		return
	}
	r.queueBroadcast(domain.MakePacketDrawingUpdated(delta))
}

func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func (r *room) handleAnswerEnvelope(answer domain.AnswerPayload, from Player) {
	if r.phase != domain.PHASE_GUESSING {
		r.queueError(from, domain.ErrInvalidTurn)
		return
	}
	m := r.memberById(from.Id())
	if m == nil || m.record.Role != domain.ROLE_GUESSER {
		r.queueError(from, domain.ErrInvalidTurn)
		return
	}

	if normalizeAnswer(answer.Answer) != normalizeAnswer(r.currentWord) {
		r.queueBroadcastExcept(from.Id(), domain.MakePacketChatRelay(m.record.Nickname, answer.Answer))
		return
	}

	r.finishRound(from.Id(), from)
}

func (r *room) handleChatEnvelope(msg domain.ChatPayload, from Player) {
	m := r.memberById(from.Id())
	if m == nil || msg.Message == "" {
		return
	}
	r.queueBroadcastExcept(from.Id(), domain.MakePacketChatRelay(m.record.Nickname, msg.Message))
}

// finishRound commits the round outcome. Both ways a round can end, a
// correct answer and guess-timer expiry, arrive through the actor loop,
// and the phase flips to POST_ROUND before any broadcast goes out, so a
// second ending cannot slip in behind the first.
func (r *room) finishRound(winnerId string, origin Player) {
	increments := make(map[string]int)
	if winnerId != "" {
		increments[winnerId] = roundScore
		increments[r.prevPainter] += roundScore
	} else {
		increments[r.prevDevil] = roundScore
	}

	scores := make(map[string]int, len(r.members))
	for _, m := range r.members {
		scores[m.record.PlayerID] = m.record.Score + increments[m.record.PlayerID]
	}

	prevPhase := r.phase
	r.phase = domain.PHASE_POST_ROUND
	r.winnerId = winnerId

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
		r.phase = prevPhase
		r.winnerId = ""
		logger.Criticalf("room %s: persisting round end: %v", r.id, err)
		if origin != nil {
			r.queueError(origin, domain.UnexpectedStorageError)
			return
		}
		// The expiry that got us here already consumed the guess
		// countdown. Re-arm it so the timeout fires again instead of
		// leaving the round open until someone guesses right.
		r.timers.Arm(timerKeyPhase, revealDuration, r.now)
		return
	}

	// Stop the guess countdown before announcing the result so the
	// expiry path cannot fire for a round already decided.
	r.timers.Disarm(timerKeyPhase)

	for _, m := range r.members {
		m.record.Score = scores[m.record.PlayerID]
		if err := r.store.UpdatePlayer(ctx, r.id, m.record); err != nil {
			logger.Warningf("room %s: persisting score of %s: %v", r.id, m.record.PlayerID, err)
		}
	}

	r.queueBroadcast(domain.MakePacketRoundEnded(domain.RoundEndedPayload{
		Round:    r.round,
		Word:     r.currentWord,
		WinnerID: winnerId,
		Scores:   scores,
	}))

	r.timers.Arm(timerKeyPhase, revealDuration, r.now)
}

// --- timer events ---

func (r *room) handleTick(now time.Time) {
	r.now = now
	for _, ev := range r.timers.Advance(now) {
		switch {
		case ev.Key == timerKeyPhase && !ev.Expired:
			r.queueBroadcast(domain.MakePacketTimerTick(ev.Remaining))
		case ev.Key == timerKeyPhase:
			r.handlePhaseExpiry()
		case strings.HasPrefix(ev.Key, graceKeyPrefix) && ev.Expired:
			r.finalizeRemoval(strings.TrimPrefix(ev.Key, graceKeyPrefix))
		}
	}
}

func (r *room) handlePhaseExpiry() {
	switch r.phase {
	case domain.PHASE_DRAWING:
		// The canvas freezes here; what converged so far is the
		// round's artifact.
		r.artifact = r.replica.Snapshot()
		r.phase = domain.PHASE_GUESSING
		ctx, cancel := r.storeCtx()
		if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
			logger.Warningf("room %s: persisting guessing phase: %v", r.id, err)
		}
		cancel()
		r.timers.Arm(timerKeyPhase, guessDuration, r.now)
		r.queueBroadcast(domain.MakePacketGuessingStarted(r.round, guessDuration))

	case domain.PHASE_GUESSING:
		// Nobody guessed in time; the devil takes the round.
		r.finishRound("", nil)

	case domain.PHASE_POST_ROUND:
		if r.round >= r.settings.TotalRounds {
			r.enterPostEnd()
			return
		}
		if !r.startRound(nil) {
			// Store write failed; stay in POST_ROUND and retry on
			// the next reveal expiry.
			r.timers.Arm(timerKeyPhase, revealDuration, r.now)
		}

	case domain.PHASE_POST_END:
		r.resetToWaiting()

	default:
		logger.Debugf("room %s: phase timer fired in phase %d", r.id, r.phase)
	}
}

func (r *room) enterPostEnd() {
	r.phase = domain.PHASE_POST_END
	ctx, cancel := r.storeCtx()
	if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
		logger.Warningf("room %s: persisting game end: %v", r.id, err)
	}
	cancel()

	scores := make(map[string]int, len(r.members))
	for _, m := range r.members {
		scores[m.record.PlayerID] = m.record.Score
	}

	r.queueBroadcast(domain.MakePacketGameOver(domain.GameOverPayload{
		Standings: computeStandings(scores),
		Scores:    scores,
	}))
	r.timers.Arm(timerKeyPhase, postEndDuration, r.now)
}

// computeStandings ranks players by score, groups ties under one rank
// and keeps the top three ranks.
func computeStandings(scores map[string]int) []domain.Standing {
	byScore := make(map[int][]string)
	for id, score := range scores {
		byScore[score] = append(byScore[score], id)
	}
	distinct := make([]int, 0, len(byScore))
	for score := range byScore {
		distinct = append(distinct, score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	standings := make([]domain.Standing, 0, 3)
	for rank, score := range distinct {
		if rank >= 3 {
			break
		}
		ids := byScore[score]
		sort.Strings(ids)
		standings = append(standings, domain.Standing{Rank: rank + 1, PlayerIDs: ids, Score: score})
	}
	return standings
}

func (r *room) resetToWaiting() {
	if r.connectedCount() == 0 {
		r.teardown()
		return
	}

	r.phase = domain.PHASE_WAITING
	r.round = 0
	r.currentWord = ""
	r.words = nil
	r.winnerId = ""
	r.prevPainter = ""
	r.prevDevil = ""
	r.replica = canvas.NewReplica(r.id)
	r.artifact = nil

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
		logger.Warningf("room %s: persisting lobby reset: %v", r.id, err)
	}
	for _, m := range r.members {
		m.record.Role = domain.ROLE_NONE
		m.record.Score = 0
		if err := r.store.UpdatePlayer(ctx, r.id, m.record); err != nil {
			logger.Warningf("room %s: persisting reset of %s: %v", r.id, m.record.PlayerID, err)
		}
	}
	r.updateDescription()
}

// --- disconnects and removal ---

// handleDisconnect is the soft path: the socket died, the seat stays
// reserved for the grace window.
func (r *room) handleDisconnect(p Player) {
	m := r.memberById(p.Id())
	if m == nil || m.conn != p {
		// A replaced or already-removed connection; nothing to keep.
		p.CancelAndRelease()
		return
	}

	m.record.Status = domain.STATUS_DISCONNECTED
	p.CancelAndRelease()

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.UpdatePlayer(ctx, r.id, m.record); err != nil {
		logger.Warningf("room %s: persisting disconnect of %s: %v", r.id, m.record.PlayerID, err)
	}

	r.timers.Arm(graceKeyPrefix+m.record.PlayerID, graceDuration, r.now)
}

// finalizeRemoval takes a player out for good: grace expiry, duplicate
// identity replacement, or teardown.
func (r *room) finalizeRemoval(playerId string) {
	m := r.memberById(playerId)
	if m == nil {
		return
	}

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.RemovePlayer(ctx, r.id, playerId); err != nil {
		// Keep the seat and retry on the next grace expiry rather
		// than letting memory and store disagree.
		logger.Criticalf("room %s: persisting removal of %s: %v", r.id, playerId, err)
		r.timers.Arm(graceKeyPrefix+playerId, graceDuration, r.now)
		return
	}

	r.timers.Disarm(graceKeyPrefix + playerId)
	for i, other := range r.members {
		if other == m {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	m.conn.CancelAndRelease()

	if len(r.members) == 0 {
		r.teardown()
		return
	}

	if r.hostId == playerId {
		r.hostId = r.members[0].record.PlayerID
		if err := r.store.UpdateRoom(ctx, r.record()); err != nil {
			logger.Warningf("room %s: persisting host handoff: %v", r.id, err)
		}
	}

	r.queueBroadcast(domain.MakePacketPlayerLeft(m.record, r.snapshot()))

	// A round cannot survive losing the only hand allowed to draw.
	if m.record.Role == domain.ROLE_PAINTER &&
		(r.phase == domain.PHASE_DRAWING || r.phase == domain.PHASE_GUESSING) {
		if r.phase == domain.PHASE_DRAWING {
			r.phase = domain.PHASE_GUESSING
		}
		r.finishRound("", nil)
	}

	r.updateDescription()
}

func (r *room) teardown() {
	r.timers.DisarmAll()
	for _, m := range r.members {
		m.conn.CancelAndRelease()
	}
	r.members = nil

	ctx, cancel := r.storeCtx()
	defer cancel()
	if err := r.store.DeleteRoom(ctx, r.id); err != nil {
		logger.Criticalf("room %s: deleting stored state: %v", r.id, err)
	}
	if r.parentLobby != nil {
		r.parentLobby.RemoveRoom(r.id)
	}
}

func (r *room) record() domain.Room {
	return domain.Room{
		RoomID:       r.id,
		HostID:       r.hostId,
		Status:       r.phase,
		CurrentRound: r.round,
		CurrentWord:  r.currentWord,
		TotalWords:   r.words,
	}
}
