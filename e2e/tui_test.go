//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartupShowsMembers(t *testing.T) {
	t.Parallel()
	tf := start(t)

	require.True(t, tf.SeePlain("회원 관리"))
	require.True(t, tf.SeePlain("user01@example.com"))
	require.True(t, tf.SeePlain("1 / 6 페이지"))
}

func TestSwitchEntityAndPage(t *testing.T) {
	t.Parallel()
	tf := start(t)

	tf.Reset()
	tf.SendKeys("3")
	require.True(t, tf.SeePlain("주문 관리"))
	require.True(t, tf.SeePlain("전체 34건"))

	tf.SendKeys("l")
	require.True(t, tf.SeePlain("2 / 4 페이지"))
}

func TestSearchOrders(t *testing.T) {
	t.Parallel()
	tf := start(t)

	tf.SendKeys("3")
	require.True(t, tf.SeePlain("전체 34건"))

	tf.Reset()
	tf.SendKeys("/")
	time.Sleep(50 * time.Millisecond)
	tf.SendKeys("kim")
	if err := tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "전체 5건")
	}, 3*time.Second, "local search should filter while typing"); err != nil {
		t.Fatal(err)
	}
	tf.Enter()
}

func TestBulkGradeChange(t *testing.T) {
	t.Parallel()
	tf := start(t)

	tf.SendKeys("2")
	require.True(t, tf.SeePlain("멤버십 관리"))

	tf.Select()
	tf.Down()
	tf.Select()
	require.True(t, tf.SeePlain("2건 선택"))

	tf.SendKeys(KeyBulk)
	require.True(t, tf.SeePlain("등급 변경: grade 선택"))
	tf.SendKeys("jj")
	time.Sleep(50 * time.Millisecond)
	tf.Enter()
	require.True(t, tf.SeePlain("(y/n)"))

	tf.SendKeys("y")
	if !tf.WaitForStatusMessage("등급 변경 완료: 2건", 3*time.Second) {
		tf.DumpTailOnFail(t, "bulk", 4096)
		t.Fatal("bulk change did not finish")
	}
}

func TestHelpOverlay(t *testing.T) {
	t.Parallel()
	tf := start(t)

	tf.SendKeys(KeyHelp)
	require.True(t, tf.SeePlain("backoffice 도움말"))
	tf.SendKeys(KeyHelp)
}
