package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"housing-dashboard/dashboard"
	"housing-dashboard/models"
	"housing-dashboard/pages"
	"housing-dashboard/services"
	"housing-dashboard/storage"
)

const themeCookie = "theme"

// maxUpdateBody bounds the JSON body of an update request.
const maxUpdateBody = 64 << 10

// sessionFromRequest reads the session of a full page load. The theme comes
// from ?theme=, then the theme cookie, then the server default. Filters in
// the query apply to the filter group of the requested page.
func (s *Server) sessionFromRequest(r *http.Request) dashboard.Session {
	q := r.URL.Query()

	theme := s.defaultTheme
	if c, err := r.Cookie(themeCookie); err == nil {
		theme = models.ParseTheme(c.Value, theme)
	}
	theme = models.ParseTheme(q.Get("theme"), theme)

	sess := dashboard.Session{Path: r.URL.Path, Theme: theme}
	if sel := selectionFromQuery(r); sel != (models.Selection{}) {
		sess = sess.WithSelection(sess.Page(), sel)
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		sess.TablePage = p
	}
	return sess
}

func selectionFromQuery(r *http.Request) models.Selection {
	q := r.URL.Query()
	return models.Selection{Zoning: q.Get("zoning"), BldgType: q.Get("bldgtype")}
}

// pageData is the data of the base template.
type pageData struct {
	Session dashboard.Session
	Nav     []pages.NavLink
	Content template.HTML
	Initial initialState
}

type initialState struct {
	Session dashboard.Session `json:"session"`
	Outputs dashboard.Outputs `json:"outputs"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.sessionFromRequest(r)
	if v := r.URL.Query().Get("theme"); v != "" && models.ParseTheme(v, "") != "" {
		http.SetCookie(w, &http.Cookie{Name: themeCookie, Value: string(sess.Theme), Path: "/", MaxAge: 365 * 24 * 3600, SameSite: http.SameSiteLaxMode})
	}

	update, err := s.ctrl.Render(r.Context(), sess)
	if err != nil {
		s.render(w, http.StatusInternalServerError, "error", "Failed to render page: "+err.Error())
		return
	}

	outputs := make(dashboard.Outputs, len(update.Outputs))
	var content template.HTML
	for id, v := range update.Outputs {
		if id == pages.PageContent {
			// rendered by html/template in the pages package
			content = template.HTML(v.(string))
			continue
		}
		outputs[id] = v
	}

	s.render(w, http.StatusOK, "base", pageData{
		Session: sess,
		Nav:     pages.Nav(),
		Content: content,
		Initial: initialState{Session: sess, Outputs: outputs},
	})
}

// updateRequest is the body of POST /api/update.
type updateRequest struct {
	Session dashboard.Session `json:"session"`
	Changed []string          `json:"changed"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBody))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "malformed update: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Session.Theme = models.ParseTheme(string(req.Session.Theme), s.defaultTheme)

	update, err := s.ctrl.Dispatch(r.Context(), req.Session, req.Changed)
	if err != nil {
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view := services.FilterTable(s.table, selectionFromQuery(r))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="housing.csv"`)
	cw := storage.NewCSVStreamWriter(w)
	if err := cw.Write(view); err != nil {
		s.logger.Zap().Error("export failed", zap.Error(err))
		return
	}
	_ = cw.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.table.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
