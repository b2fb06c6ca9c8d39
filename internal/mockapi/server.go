package mockapi

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
)

// Options configures the mock backend router
type Options struct {
	// Token, when set, is required as "Authorization: Bearer <token>"
	Token  string
	Logger logr.Logger
}

type server struct {
	store *Store
	opts  Options
	log   logr.Logger
}

// NewRouter serves the admin REST API from store
func NewRouter(store *Store, opts Options) *mux.Router {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	s := &server{store: store, opts: opts, log: log.WithName("mockapi")}

	r := mux.NewRouter()
	r.Use(s.logRequests, s.authenticate, s.injectFailures)

	r.HandleFunc("/admin/user", s.listUsers(false)).Methods(http.MethodGet)
	r.HandleFunc("/admin/user/blocked", s.listUsers(true)).Methods(http.MethodGet)
	r.HandleFunc("/admin/user/{email}", s.getUser).Methods(http.MethodGet)
	r.HandleFunc("/admin/user/{email}", s.deleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/admin/membership", s.listMemberships).Methods(http.MethodGet)
	r.HandleFunc("/admin/membership/{no:[0-9]+}", s.changeGrade).Methods(http.MethodPatch)

	r.HandleFunc("/admin/order", s.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/admin/product", s.listProducts).Methods(http.MethodGet)

	r.HandleFunc("/admin/{kind:notice|faq}", s.listPosts).Methods(http.MethodGet)
	r.HandleFunc("/admin/{kind:notice|faq}", s.createPost).Methods(http.MethodPost)
	r.HandleFunc("/admin/{kind:notice|faq}/{no:[0-9]+}", s.getPost).Methods(http.MethodGet)
	r.HandleFunc("/admin/{kind:notice|faq}/{no:[0-9]+}", s.updatePost).Methods(http.MethodPut)
	r.HandleFunc("/admin/{kind:notice|faq}/{no:[0-9]+}", s.deletePost).Methods(http.MethodDelete)

	r.HandleFunc("/admin/{doc:terms|privacy}", s.getDocument).Methods(http.MethodGet)
	r.HandleFunc("/admin/{doc:terms|privacy}", s.updateDocument).Methods(http.MethodPut)

	r.HandleFunc("/admin", s.listAdmins).Methods(http.MethodGet)
	r.HandleFunc("/admin", s.createAdmin).Methods(http.MethodPost)

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start).String())
	})
}

func (s *server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.opts.Token {
			writeMessage(w, http.StatusUnauthorized, "인증이 필요합니다")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.store.failure(r.Method + " " + r.URL.Path); ok {
			writeMessage(w, status, "요청을 처리하지 못했습니다")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Message: msg})
}

func pageParams(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func pathNo(r *http.Request) int64 {
	no, _ := strconv.ParseInt(mux.Vars(r)["no"], 10, 64)
	return no
}

func (s *server) listUsers(blocked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pageParams(r)
		users, total := s.store.listUsers(blocked, r.URL.Query().Get("search"), page, limit)
		if users == nil {
			users = []user{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users, "total": total})
	}
}

func (s *server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.findUser(mux.Vars(r)["email"])
	if !ok {
		writeMessage(w, http.StatusNotFound, "회원을 찾을 수 없습니다")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.deleteUser(mux.Vars(r)["email"]) {
		writeMessage(w, http.StatusNotFound, "회원을 찾을 수 없습니다")
		return
	}
	writeMessage(w, http.StatusOK, "삭제되었습니다")
}

func (s *server) listMemberships(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	q := r.URL.Query()
	rows, total := s.store.listMemberships(q.Get("grade"), q.Get("search"), page, limit)
	if rows == nil {
		rows = []membership{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"memberships": rows, "total": total})
}

func (s *server) changeGrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Grade string `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "잘못된 요청입니다")
		return
	}
	switch body.Grade {
	case "BASIC", "PREMIUM", "VIP":
	default:
		writeMessage(w, http.StatusBadRequest, "알 수 없는 등급입니다")
		return
	}
	if !s.store.changeGrade(pathNo(r), body.Grade) {
		writeMessage(w, http.StatusNotFound, "멤버십을 찾을 수 없습니다")
		return
	}
	writeMessage(w, http.StatusOK, "변경되었습니다")
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.store.listOrders()
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders, "total": len(orders)})
}

func (s *server) listProducts(w http.ResponseWriter, r *http.Request) {
	products := s.store.listProducts()
	writeJSON(w, http.StatusOK, map[string]any{"products": products, "total": len(products)})
}

func listKey(kind string) string {
	if kind == "faq" {
		return "faqs"
	}
	return "notices"
}

func (s *server) listPosts(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	posts := s.store.listPosts(kind)
	writeJSON(w, http.StatusOK, map[string]any{listKey(kind): posts, "total": len(posts)})
}

func (s *server) getPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.findPost(mux.Vars(r)["kind"], pathNo(r))
	if !ok {
		writeMessage(w, http.StatusNotFound, "게시글을 찾을 수 없습니다")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func decodePost(r *http.Request) (post, bool) {
	var p post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return post{}, false
	}
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return post{}, false
	}
	return p, true
}

func (s *server) createPost(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePost(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "제목과 내용을 입력해 주세요")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.createPost(mux.Vars(r)["kind"], p))
}

func (s *server) updatePost(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePost(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "제목과 내용을 입력해 주세요")
		return
	}
	updated, ok := s.store.updatePost(mux.Vars(r)["kind"], pathNo(r), p)
	if !ok {
		writeMessage(w, http.StatusNotFound, "게시글을 찾을 수 없습니다")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *server) deletePost(w http.ResponseWriter, r *http.Request) {
	if !s.store.deletePost(mux.Vars(r)["kind"], pathNo(r)) {
		writeMessage(w, http.StatusNotFound, "게시글을 찾을 수 없습니다")
		return
	}
	writeMessage(w, http.StatusOK, "삭제되었습니다")
}

func (s *server) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins := s.store.listAdmins()
	writeJSON(w, http.StatusOK, map[string]any{"admins": admins, "total": len(admins)})
}

func (s *server) createAdmin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "잘못된 요청입니다")
		return
	}
	if _, err := mail.ParseAddress(body.Email); err != nil || body.Name == "" || len(body.Password) < 8 {
		writeMessage(w, http.StatusBadRequest, "입력값을 확인해 주세요")
		return
	}
	a, err := s.store.createAdmin(body.Email, body.Name, body.Password)
	if err != nil {
		writeMessage(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *server) getDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.document(mux.Vars(r)["doc"])
	if !ok {
		writeMessage(w, http.StatusNotFound, "문서를 찾을 수 없습니다")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *server) updateDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "내용을 입력해 주세요")
		return
	}
	writeJSON(w, http.StatusOK, s.store.updateDocument(mux.Vars(r)["doc"], body.Title, body.Content))
}
