package mockapi

import (
	"fmt"
	"time"
)

// Seed sizes
const (
	SeedUsers        = 57
	SeedBlockedUsers = 23
	SeedOrders       = 34
	SeedProducts     = 18
	SeedNotices      = 12
	SeedFAQs         = 15
)

var (
	seedNicknames     = []string{"Kim철수", "Lee영희", "Park민수", "Choi지은", "Jung하늘", "Kang서연", "Cho현우", "Yoon다은"}
	seedGrades        = []string{"BASIC", "PREMIUM", "VIP"}
	seedOrderStatus   = []string{"결제완료", "배송중", "배송완료", "취소"}
	seedProductStatus = []string{"판매중", "판매중", "품절", "숨김"}
	seedProductKinds  = []string{"의류", "잡화", "식품"}
	seedNoticeKinds   = []string{"공지", "이벤트", "점검"}
	seedFAQKinds      = []string{"회원", "결제", "배송", "기타"}
)

// NewSeededStore returns a store filled with deterministic sample data.
// The last SeedBlockedUsers users are blocked.
func NewSeededStore() *Store {
	s := NewStore()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < SeedUsers; i++ {
		no := int64(i + 1)
		nickname := seedNicknames[i%len(seedNicknames)]
		if i >= len(seedNicknames) {
			nickname = fmt.Sprintf("%s%d", nickname, i/len(seedNicknames))
		}
		grade := seedGrades[i%len(seedGrades)]
		u := &user{
			No:              no,
			Email:           fmt.Sprintf("user%02d@example.com", no),
			Nickname:        nickname,
			Phone:           fmt.Sprintf("010-%04d-%04d", 1000+i, 5000+i*7),
			CreatedAt:       base.AddDate(0, 0, i),
			Membership:      grade,
			OrderCount:      i % 9,
			TotalSpent:      int64(i%9) * 32000,
			LastLoginAt:     base.AddDate(0, 1, i),
			MarketingAgreed: i%2 == 0,
		}
		if i >= SeedUsers-SeedBlockedUsers {
			u.Blocked = true
			u.Reason = "운영정책 위반"
			u.BlockedAt = base.AddDate(0, 2, i)
		}
		s.users = append(s.users, u)
		s.memberships = append(s.memberships, &membership{
			No:        no,
			Email:     u.Email,
			Nickname:  u.Nickname,
			Grade:     grade,
			ExpiresAt: base.AddDate(1, 0, i),
		})
	}

	for i := 0; i < SeedOrders; i++ {
		s.orders = append(s.orders, order{
			No:          int64(i + 1),
			OrderNumber: fmt.Sprintf("ORD-2024%04d", i+1),
			Buyer:       seedNicknames[i%len(seedNicknames)],
			Product:     fmt.Sprintf("상품 %d", i%SeedProducts+1),
			Amount:      int64(12000 + i*1500),
			Status:      seedOrderStatus[i%len(seedOrderStatus)],
			OrderedAt:   base.Add(time.Duration(i) * 3 * time.Hour),
		})
	}

	for i := 0; i < SeedProducts; i++ {
		status := seedProductStatus[i%len(seedProductStatus)]
		stock := 10 + i
		if status == "품절" {
			stock = 0
		}
		s.products = append(s.products, product{
			No:       int64(i + 1),
			Name:     fmt.Sprintf("상품 %d", i+1),
			Category: seedProductKinds[i%len(seedProductKinds)],
			Price:    int64(9900 + i*1000),
			Stock:    stock,
			Status:   status,
		})
	}

	for i := 0; i < SeedNotices; i++ {
		s.posts["notice"] = append(s.posts["notice"], &post{
			No:        s.nextPost,
			Title:     fmt.Sprintf("공지사항 %d", i+1),
			Category:  seedNoticeKinds[i%len(seedNoticeKinds)],
			Content:   fmt.Sprintf("공지사항 %d 내용입니다.", i+1),
			CreatedAt: base.AddDate(0, 0, i),
		})
		s.nextPost++
	}

	for i := 0; i < SeedFAQs; i++ {
		s.posts["faq"] = append(s.posts["faq"], &post{
			No:        s.nextPost,
			Title:     fmt.Sprintf("자주 묻는 질문 %d", i+1),
			Category:  seedFAQKinds[i%len(seedFAQKinds)],
			Content:   fmt.Sprintf("질문 %d에 대한 답변입니다.", i+1),
			CreatedAt: base.AddDate(0, 0, i),
		})
		s.nextPost++
	}

	for _, a := range []struct{ email, name string }{
		{"root@example.com", "최고관리자"},
		{"ops@example.com", "운영팀"},
	} {
		s.admins = append(s.admins, &admin{
			No:        s.nextAdmin,
			Email:     a.email,
			Name:      a.name,
			CreatedAt: base,
			password:  "changeme",
		})
		s.nextAdmin++
	}

	s.documents["terms"] = &document{Title: "이용약관", Content: "제1조 (목적)\n이 약관은 서비스 이용에 관한 사항을 규정합니다.", UpdatedAt: base}
	s.documents["privacy"] = &document{Title: "개인정보처리방침", Content: "1. 수집하는 개인정보 항목\n이메일, 닉네임, 연락처", UpdatedAt: base}

	return s
}
