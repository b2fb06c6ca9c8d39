package mockapi

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory dataset served by the mock backend
type Store struct {
	mu sync.RWMutex

	users       []*user
	memberships []*membership
	orders      []order
	products    []product
	posts       map[string][]*post // "notice" | "faq"
	admins      []*admin
	documents   map[string]*document

	nextPost  int64
	nextAdmin int64

	// failures injected by tests: "PATCH /admin/membership/2" -> status
	failures map[string]int
	now      func() time.Time
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		posts:     map[string][]*post{"notice": nil, "faq": nil},
		documents: map[string]*document{},
		failures:  map[string]int{},
		nextPost:  1,
		nextAdmin: 1,
		now:       time.Now,
	}
}

// FailRequests makes every matching request answer with status.
// key is "METHOD /path", e.g. "PATCH /admin/membership/2".
func (s *Store) FailRequests(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = status
}

func (s *Store) failure(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.failures[key]
	return status, ok
}

func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, page, limit int) []T {
	if limit <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+limit, len(rows))
	return rows[start:end]
}

func (s *Store) listUsers(blocked bool, search string, page, limit int) ([]user, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []user
	for _, u := range s.users {
		if blocked && !u.Blocked {
			continue
		}
		if !containsFold(search, strconv.FormatInt(u.No, 10), u.Email, u.Nickname, u.Phone) {
			continue
		}
		out = append(out, *u)
	}
	return paginate(out, page, limit), len(out)
}

func (s *Store) findUser(email string) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return *u, true
		}
	}
	return user{}, false
}

func (s *Store) deleteUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(u *user) bool { return u.Email == email })
	if i < 0 {
		return false
	}
	no := s.users[i].No
	s.users = slices.Delete(s.users, i, i+1)
	s.memberships = slices.DeleteFunc(s.memberships, func(m *membership) bool { return m.No == no })
	return true
}

func (s *Store) listMemberships(grade, search string, page, limit int) ([]membership, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []membership
	for _, m := range s.memberships {
		if grade != "" && m.Grade != grade {
			continue
		}
		if !containsFold(search, strconv.FormatInt(m.No, 10), m.Email, m.Nickname, m.Grade) {
			continue
		}
		out = append(out, *m)
	}
	return paginate(out, page, limit), len(out)
}

func (s *Store) changeGrade(no int64, grade string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.memberships {
		if m.No == no {
			m.Grade = grade
			for _, u := range s.users {
				if u.No == no {
					u.Membership = grade
				}
			}
			return true
		}
	}
	return false
}

func (s *Store) listOrders() []order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

func (s *Store) listProducts() []product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) listPosts(kind string) []post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]post, 0, len(s.posts[kind]))
	for _, p := range s.posts[kind] {
		out = append(out, *p)
	}
	return out
}

func (s *Store) findPost(kind string, no int64) (post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts[kind] {
		if p.No == no {
			return *p, true
		}
	}
	return post{}, false
}

func (s *Store) createPost(kind string, p post) post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.No = s.nextPost
	s.nextPost++
	p.CreatedAt = s.now()
	// newest first, like the admin API
	s.posts[kind] = append([]*post{&p}, s.posts[kind]...)
	return p
}

func (s *Store) updatePost(kind string, no int64, p post) (post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.posts[kind] {
		if existing.No == no {
			existing.Title = p.Title
			existing.Category = p.Category
			existing.Content = p.Content
			return *existing, true
		}
	}
	return post{}, false
}

func (s *Store) deletePost(kind string, no int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.posts[kind])
	s.posts[kind] = slices.DeleteFunc(s.posts[kind], func(p *post) bool { return p.No == no })
	return len(s.posts[kind]) < before
}

func (s *Store) listAdmins() []admin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	return out
}

func (s *Store) createAdmin(email, name, password string) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admins {
		if a.Email == email {
			return admin{}, fmt.Errorf("이미 등록된 이메일입니다: %s", email)
		}
	}
	a := &admin{No: s.nextAdmin, Email: email, Name: name, CreatedAt: s.now(), password: password}
	s.nextAdmin++
	s.admins = append(s.admins, a)
	return *a, nil
}

func (s *Store) document(kind string) (document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[kind]
	if !ok {
		return document{}, false
	}
	return *d, true
}

func (s *Store) updateDocument(kind, title, content string) document {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &document{Title: title, Content: content, UpdatedAt: s.now()}
	s.documents[kind] = d
	return *d
}
