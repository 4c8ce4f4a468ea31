package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/switchgames/site/catalog"
	"github.com/switchgames/site/internal/util"
	"github.com/switchgames/site/store"
)

// ---------------------------------------------------------------------------
// Public listings
// ---------------------------------------------------------------------------

// PublicGames handles GET /api/games: active games, enriched with live
// catalog stats when a catalog client is configured.
func (a *API) PublicGames(w http.ResponseWriter, r *http.Request) {
	var active []store.Game
	for _, g := range a.stores.Games.ReadAll() {
		if g.Active {
			active = append(active, g)
		}
	}

	var games []catalog.EnrichedGame
	if a.catalog != nil {
		games = a.catalog.EnrichGames(r.Context(), active)
	} else {
		games = make([]catalog.EnrichedGame, 0, len(active))
		for _, g := range active {
			games = append(games, catalog.EnrichedGame{Game: g})
		}
	}
	if games == nil {
		games = []catalog.EnrichedGame{}
	}
	writeJSON(w, http.StatusOK, PublicGamesResponse{Games: games})
}

// PublicPosts handles GET /api/blog/posts: published posts only.
func (a *API) PublicPosts(w http.ResponseWriter, r *http.Request) {
	published := []store.Post{}
	for _, p := range a.stores.Posts.ReadAll() {
		if p.Published {
			published = append(published, p)
		}
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: published})
}

// PublicCareers handles GET /api/careers: active positions only.
func (a *API) PublicCareers(w http.ResponseWriter, r *http.Request) {
	active := []store.Career{}
	for _, c := range a.stores.Careers.ReadAll() {
		if c.Active {
			active = append(active, c)
		}
	}
	writeJSON(w, http.StatusOK, CareersResponse{Careers: active})
}

// PublicStaff handles GET /api/staff: active team members only.
func (a *API) PublicStaff(w http.ResponseWriter, r *http.Request) {
	active := []store.StaffMember{}
	for _, m := range a.stores.Staff.ReadAll() {
		if m.Active {
			active = append(active, m)
		}
	}
	writeJSON(w, http.StatusOK, StaffResponse{Staff: active})
}

// TotalVisits handles GET /api/get-total-visits.
func (a *API) TotalVisits(w http.ResponseWriter, r *http.Request) {
	var visits int64
	if a.stats != nil {
		visits, _ = a.stats.Totals()
	}
	writeJSON(w, http.StatusOK, StatResponse{Message: "Total visits", Value: visits})
}

// TotalCCU handles GET /api/get-total-ccu.
func (a *API) TotalCCU(w http.ResponseWriter, r *http.Request) {
	var ccu int64
	if a.stats != nil {
		_, ccu = a.stats.Totals()
	}
	writeJSON(w, http.StatusOK, StatResponse{Message: "Total CCU", Value: ccu})
}

// ---------------------------------------------------------------------------
// Games
// ---------------------------------------------------------------------------

// ListGames handles GET /api/admin/games, including inactive entries.
func (a *API) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	games := paginate(a.stores.Games.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, GamesResponse{Games: games})
}

// CreateGame handles POST /api/admin/games. Active defaults to true.
func (a *API) CreateGame(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreateGameRequest](w, r, maxBodySize)
	if !ok {
		return
	}

	game := store.Game{
		Meta:      store.NewMeta(time.Now()),
		PlaceID:   strings.TrimSpace(req.PlaceID),
		Thumbnail: strings.TrimSpace(req.Thumbnail),
		Featured:  req.Featured,
		Active:    true,
	}
	if req.Active != nil {
		game.Active = *req.Active
	}
	if err := a.stores.Games.Insert(game); err != nil {
		writeInternalError(w, "failed to create game", err)
		return
	}
	a.auditRecord(AuditRecordCreated, r, "game", game.ID)
	writeJSON(w, http.StatusCreated, GameResponse{Message: "Game created", Game: game})
}

// UpdateGame handles PUT /api/admin/games/{id}.
func (a *API) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[UpdateGameRequest](w, r, maxBodySize)
	if !ok {
		return
	}

	game, err := a.stores.Games.Update(id, func(g *store.Game) {
		if req.PlaceID != nil {
			g.PlaceID = strings.TrimSpace(*req.PlaceID)
			// The universe mapping follows the place; stale values
			// would enrich the wrong game.
			g.UniverseID = ""
		}
		if req.UniverseID != nil {
			g.UniverseID = strings.TrimSpace(*req.UniverseID)
		}
		if req.Thumbnail != nil {
			g.Thumbnail = strings.TrimSpace(*req.Thumbnail)
		}
		if req.Featured != nil {
			g.Featured = *req.Featured
		}
		if req.Active != nil {
			g.Active = *req.Active
		}
		g.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	a.auditRecord(AuditRecordUpdated, r, "game", id)
	writeJSON(w, http.StatusOK, GameResponse{Message: "Game updated", Game: game})
}

// DeleteGame handles DELETE /api/admin/games/{id}.
func (a *API) DeleteGame(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "game", a.stores.Games.Delete, "Game deleted")
}

// ---------------------------------------------------------------------------
// Blog posts
// ---------------------------------------------------------------------------

// ListPosts handles GET /api/admin/posts, drafts included.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	posts := paginate(a.stores.Posts.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, PostsResponse{Posts: posts})
}

// CreatePost handles POST /api/admin/posts. New posts default to
// unpublished drafts; the slug is derived from the title.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreatePostRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	post := store.Post{
		Meta:      store.NewMeta(time.Now()),
		Title:     title,
		Slug:      util.Slugify(title),
		Content:   a.sanitizer.Sanitize(req.Content),
		Published: req.Published,
	}
	if err := a.stores.Posts.Insert(post); err != nil {
		writeInternalError(w, "failed to create post", err)
		return
	}
	a.auditRecord(AuditRecordCreated, r, "post", post.ID)
	writeJSON(w, http.StatusCreated, PostResponse{Message: "Post created", Post: post})
}

// UpdatePost handles PUT /api/admin/posts/{id}. The slug tracks the
// title on rename.
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[UpdatePostRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	post, err := a.stores.Posts.Update(id, func(p *store.Post) {
		if req.Title != nil {
			p.Title = strings.TrimSpace(*req.Title)
			p.Slug = util.Slugify(p.Title)
		}
		if req.Content != nil {
			p.Content = a.sanitizer.Sanitize(*req.Content)
		}
		if req.Published != nil {
			p.Published = *req.Published
		}
		p.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	a.auditRecord(AuditRecordUpdated, r, "post", id)
	writeJSON(w, http.StatusOK, PostResponse{Message: "Post updated", Post: post})
}

// DeletePost handles DELETE /api/admin/posts/{id}.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "post", a.stores.Posts.Delete, "Post deleted")
}

// ---------------------------------------------------------------------------
// Careers
// ---------------------------------------------------------------------------

// ListCareers handles GET /api/admin/careers, inactive included.
func (a *API) ListCareers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	careers := paginate(a.stores.Careers.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, CareersResponse{Careers: careers})
}

// CreateCareer handles POST /api/admin/careers. Type defaults to
// "Full-time" and location to "Remote".
func (a *API) CreateCareer(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreateCareerRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	career := store.Career{
		Meta:         store.NewMeta(time.Now()),
		Title:        title,
		Department:   strings.TrimSpace(req.Department),
		Type:         strings.TrimSpace(req.Type),
		Location:     strings.TrimSpace(req.Location),
		Description:  a.sanitizer.Sanitize(req.Description),
		Requirements: req.Requirements,
		NiceToHave:   req.NiceToHave,
		Questions:    req.Questions,
		Active:       true,
	}
	if career.Type == "" {
		career.Type = "Full-time"
	}
	if career.Location == "" {
		career.Location = "Remote"
	}
	if req.Active != nil {
		career.Active = *req.Active
	}
	if err := a.stores.Careers.Insert(career); err != nil {
		writeInternalError(w, "failed to create career", err)
		return
	}
	a.auditRecord(AuditRecordCreated, r, "career", career.ID)
	writeJSON(w, http.StatusCreated, CareerResponse{Message: "Career created", Career: career})
}

// UpdateCareer handles PUT /api/admin/careers/{id}.
func (a *API) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[UpdateCareerRequest](w, r, maxBodySize)
	if !ok {
		return
	}

	career, err := a.stores.Careers.Update(id, func(c *store.Career) {
		if req.Title != nil {
			c.Title = strings.TrimSpace(*req.Title)
		}
		if req.Department != nil {
			c.Department = strings.TrimSpace(*req.Department)
		}
		if req.Type != nil {
			c.Type = strings.TrimSpace(*req.Type)
		}
		if req.Location != nil {
			c.Location = strings.TrimSpace(*req.Location)
		}
		if req.Description != nil {
			c.Description = a.sanitizer.Sanitize(*req.Description)
		}
		if req.Requirements != nil {
			c.Requirements = *req.Requirements
		}
		if req.NiceToHave != nil {
			c.NiceToHave = *req.NiceToHave
		}
		if req.Questions != nil {
			c.Questions = *req.Questions
		}
		if req.Active != nil {
			c.Active = *req.Active
		}
		c.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	a.auditRecord(AuditRecordUpdated, r, "career", id)
	writeJSON(w, http.StatusOK, CareerResponse{Message: "Career updated", Career: career})
}

// DeleteCareer handles DELETE /api/admin/careers/{id}.
func (a *API) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "career", a.stores.Careers.Delete, "Career deleted")
}

// ---------------------------------------------------------------------------
// Staff members
// ---------------------------------------------------------------------------

// ListStaff handles GET /api/admin/staff, inactive included.
func (a *API) ListStaff(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	staff := paginate(a.stores.Staff.ReadAll(), limit, offset)
	writeJSON(w, http.StatusOK, StaffResponse{Staff: staff})
}

// CreateStaffMember handles POST /api/admin/staff.
func (a *API) CreateStaffMember(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreateStaffMemberRequest](w, r, maxBodySize)
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	member := store.StaffMember{
		Meta:   store.NewMeta(time.Now()),
		Name:   name,
		Title:  strings.TrimSpace(req.Title),
		Bio:    a.sanitizer.Sanitize(req.Bio),
		Avatar: strings.TrimSpace(req.Avatar),
		Active: true,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	if err := a.stores.Staff.Insert(member); err != nil {
		writeInternalError(w, "failed to create staff member", err)
		return
	}
	a.auditRecord(AuditRecordCreated, r, "staff", member.ID)
	writeJSON(w, http.StatusCreated, StaffMemberResponse{Message: "Staff member created", Member: member})
}

// UpdateStaffMember handles PUT /api/admin/staff/{id}.
func (a *API) UpdateStaffMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[UpdateStaffMemberRequest](w, r, maxBodySize)
	if !ok {
		return
	}

	member, err := a.stores.Staff.Update(id, func(m *store.StaffMember) {
		if req.Name != nil {
			m.Name = strings.TrimSpace(*req.Name)
		}
		if req.Title != nil {
			m.Title = strings.TrimSpace(*req.Title)
		}
		if req.Bio != nil {
			m.Bio = a.sanitizer.Sanitize(*req.Bio)
		}
		if req.Avatar != nil {
			m.Avatar = strings.TrimSpace(*req.Avatar)
		}
		if req.Active != nil {
			m.Active = *req.Active
		}
		m.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}
	a.auditRecord(AuditRecordUpdated, r, "staff", id)
	writeJSON(w, http.StatusOK, StaffMemberResponse{Message: "Staff member updated", Member: member})
}

// DeleteStaffMember handles DELETE /api/admin/staff/{id}.
func (a *API) DeleteStaffMember(w http.ResponseWriter, r *http.Request) {
	a.deleteRecord(w, r, "staff", a.stores.Staff.Delete, "Staff member deleted")
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func (a *API) auditRecord(event AuditEvent, r *http.Request, resource, id string) {
	session := sessionFromContext(r.Context())
	a.audit.logEvent(event, r, session.AccountID,
		slog.String("resource", resource),
		slog.String("record_id", id))
}

func (a *API) deleteRecord(w http.ResponseWriter, r *http.Request, resource string, del func(string) error, msg string) {
	id := chi.URLParam(r, "id")
	if err := del(id); err != nil {
		mapError(w, err)
		return
	}
	a.auditRecord(AuditRecordDeleted, r, resource, id)
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
