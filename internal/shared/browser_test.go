package shared

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() {
		getRuntime = origRuntime
		startCommand = origStart
	})

	tc := []struct {
		goos     string
		wantBin  string
		wantErr  bool
		startErr error
	}{
		{goos: "darwin", wantBin: "open"},
		{goos: "linux", wantBin: "xdg-open"},
		{goos: "windows", wantBin: "cmd"},
		{goos: "plan9", wantErr: true},
		{goos: "linux", wantBin: "xdg-open", wantErr: true, startErr: errors.New("boom")},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			var started *exec.Cmd
			getRuntime = func() string { return tt.goos }
			startCommand = func(cmd *exec.Cmd) error {
				started = cmd
				return tt.startErr
			}

			err := OpenBrowser("https://www.themoviedb.org/movie/603")
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenBrowser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantBin == "" {
				return
			}
			if started == nil {
				t.Fatal("expected a command to be started")
			}
			if !strings.HasSuffix(started.Path, tt.wantBin) && started.Args[0] != tt.wantBin {
				t.Errorf("expected %s, got %v", tt.wantBin, started.Args)
			}
			if last := started.Args[len(started.Args)-1]; last != "https://www.themoviedb.org/movie/603" {
				t.Errorf("expected url as last argument, got %s", last)
			}
		})
	}
}
