package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/opamlock/cmd/opamlock/commands"
	"go.trai.ch/opamlock/internal/app"
	"go.trai.ch/opamlock/internal/build"
)

type mockApp struct {
	lock    []app.LockOptions
	install []app.InstallOptions
	verify  []app.VerifyOptions
	err     error
}

func (m *mockApp) Lock(_ context.Context, opts app.LockOptions) error {
	m.lock = append(m.lock, opts)
	return m.err
}

func (m *mockApp) Install(_ context.Context, opts app.InstallOptions) error {
	m.install = append(m.install, opts)
	return m.err
}

func (m *mockApp) Verify(_ context.Context, opts app.VerifyOptions) error {
	m.verify = append(m.verify, opts)
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Lock(t *testing.T) {
	t.Run("whole switch", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "lock")
		require.NoError(t, err)
		require.Len(t, m.lock, 1)
		assert.Equal(t, app.LockOptions{}, m.lock[0])
	})

	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "lock", "myapp", "-o", "out.lock", "-v", "--debug", "--opam", "/opt/opam", "-c", "cfg.yaml")
		require.NoError(t, err)
		require.Len(t, m.lock, 1)
		assert.Equal(t, app.LockOptions{
			Options: app.Options{ConfigPath: "cfg.yaml", Opam: "/opt/opam", Verbose: true, Debug: true},
			Package: "myapp",
			Output:  "out.lock",
		}, m.lock[0])
	})

	t.Run("write flag", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "lock", "-w")
		require.NoError(t, err)
		assert.True(t, m.lock[0].Write)
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "lock", "a", "b")
		require.Error(t, err)
		assert.Empty(t, m.lock)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "lock")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Install(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "install", "-f", "opam.lock", "--verbose")
	require.NoError(t, err)
	require.Len(t, m.install, 1)
	assert.Equal(t, app.InstallOptions{
		Options: app.Options{Verbose: true},
		File:    "opam.lock",
	}, m.install[0])

	_, err = execute(t, m, "install", "extra")
	require.Error(t, err)
}

func TestCommands_Verify(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "verify", "myapp", "--file", "team.lock")
	require.NoError(t, err)
	require.Len(t, m.verify, 1)
	assert.Equal(t, app.VerifyOptions{Package: "myapp", File: "team.lock"}, m.verify[0])
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "opamlock version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Commit)
}
