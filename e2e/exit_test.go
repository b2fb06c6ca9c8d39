//go:build e2e && unix

package main

import (
	"testing"
	"time"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := start(t)

	// Set up exit monitoring before sending 'q'
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending 'q' to quit application...")
	tf.Quit()

	select {
	case exitErr := <-done:
		if exitErr != nil {
			t.Errorf("Process exited with 'q' command (exit code: %v)", exitErr)
		}
		return
	case <-time.After(1500 * time.Millisecond):
		// If 'q' didn't work within 1.5 seconds, use Ctrl+C
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Errorf("Process needed Ctrl+C to exit (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}

func TestApplicationExitFromPopup(t *testing.T) {
	t.Parallel()
	tf := start(t)

	// open a member detail, then quit from the console
	tf.Enter()
	if !tf.SeePlain("Kim철수") {
		tf.DumpTailOnFail(t, "popup", 4096)
		t.Fatal("member detail did not open")
	}

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendCtrlC()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after ctrl+c")
	}
}
