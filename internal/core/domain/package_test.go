package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/zerr"
)

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected a zerr error, got %T", err)
	return zErr.Metadata()
}

func TestParseListingLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    domain.Package
		wantErr bool
	}{
		{
			name: "name and version",
			line: "foo 1.0",
			want: domain.Package{Name: "foo", Version: domain.Fixed("1.0")},
		},
		{
			name: "extra columns ignored",
			line: "lwt   5.7.0   Promises and event-driven I/O",
			want: domain.Package{Name: "lwt", Version: domain.Fixed("5.7.0")},
		},
		{
			name: "URL-looking version stays fixed",
			line: "foo https://example.com/x.git",
			want: domain.Package{Name: "foo", Version: domain.Fixed("https://example.com/x.git")},
		},
		{
			name:    "single token",
			line:    "foo",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseListingLine(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPackage)
				assert.Equal(t, tt.line, metadata(t, err)["line"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLockLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    domain.Package
		wantErr bool
	}{
		{
			name: "fixed version",
			line: "foo = 1.0",
			want: domain.Package{Name: "foo", Version: domain.Fixed("1.0")},
		},
		{
			name: "no whitespace around separator",
			line: "foo=1.0",
			want: domain.Package{Name: "foo", Version: domain.Fixed("1.0")},
		},
		{
			name: "git reference",
			line: "  libB   =   git+https://h/r#dev  ",
			want: domain.Package{Name: "libB", Version: domain.GitRef("git+https://h/r#dev")},
		},
		{
			name: "https reference is normalised",
			line: "libB = https://h/r#dev",
			want: domain.Package{Name: "libB", Version: domain.GitRef("git+https://h/r#dev")},
		},
		{
			name:    "missing separator",
			line:    "foo 1.0",
			wantErr: true,
		},
		{
			name:    "two separators",
			line:    "foo = 1.0 = 2.0",
			wantErr: true,
		},
		{
			name:    "empty version",
			line:    "foo =",
			wantErr: true,
		},
		{
			name:    "empty name",
			line:    "= 1.0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseLockLine(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidLockLine)
				assert.Equal(t, tt.line, metadata(t, err)["line"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackage_Printers(t *testing.T) {
	fixed := domain.Package{Name: "libA", Version: domain.Fixed("1.0")}
	pinned := domain.Package{Name: "libB", Version: domain.GitRef("git+https://h/r#dev")}

	assert.Equal(t, "libA = 1.0", fixed.LockLine())
	assert.Equal(t, "libB = git+https://h/r#dev", pinned.LockLine())
	assert.Equal(t, "libA.1.0", fixed.InstallArg())
	assert.Equal(t, "libB", pinned.InstallArg())
}

func TestPackage_LockLineRoundTrip(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "libA", Version: domain.Fixed("1.0")},
		{Name: "libB", Version: domain.GitRef("git+https://h/r#dev")},
		{Name: "libC", Version: domain.GitRef("git+ssh://git@h/c.git#0123abc")},
	}

	for _, p := range pkgs {
		got, err := domain.ParseLockLine(p.LockLine())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestPackage_IsBase(t *testing.T) {
	assert.True(t, domain.Package{Name: "ocaml", Version: domain.Fixed("base")}.IsBase())
	assert.False(t, domain.Package{Name: "ocaml", Version: domain.Fixed("5.1.0")}.IsBase())
}
