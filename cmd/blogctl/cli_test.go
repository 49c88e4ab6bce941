package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eccentric-Harry/blog-frontend/internal/blogtest"
)

// cli runs blogctl commands against one fake backend and one storage file.
type cli struct {
	t       *testing.T
	srv     *blogtest.Server
	storage string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv := blogtest.New()
	t.Cleanup(srv.Close)
	return &cli{t: t, srv: srv, storage: filepath.Join(t.TempDir(), "storage.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	b := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(b)
	root.SetErr(b)
	root.SetArgs(append([]string{"--service-url", c.srv.URL, "--storage", c.storage}, args...))
	err := root.Execute()
	return b.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "blogctl %s: %s", strings.Join(args, " "), out)
	return out
}

func TestCLI_HealthAndStatus(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "UP\n", c.mustRun("health"))
	assert.Equal(t, "online\n", c.mustRun("status"))
	assert.Contains(t, c.mustRun("wait-healthy", "--timeout", "2s"), "healthy after")

	c.srv.SetHealthy(false)
	_, err := c.run("health")
	require.Error(t, err)
	assert.Equal(t, "offline\n", c.mustRun("status"))
}

func TestCLI_LoginPersistsTokenAcrossCommands(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "anonymous\n", c.mustRun("whoami"))

	_, err := c.run("login", "--user", blogtest.AdminUsername, "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	out := c.mustRun("login", "--user", blogtest.AdminUsername, "--password", blogtest.AdminPassword)
	assert.Equal(t, "Logged in as admin (ADMIN)\n", out)

	// A new process reads the token back from storage.
	assert.Contains(t, c.mustRun("whoami"), `"username": "admin"`)

	c.mustRun("logout")
	assert.Equal(t, "anonymous\n", c.mustRun("whoami"))
}

func TestCLI_PostsLifecycle(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--user", blogtest.AdminUsername, "--password", blogtest.AdminPassword)

	_, err := c.run("posts", "create", "--title", "ab", "--content", "short")
	require.Error(t, err, "form validation runs before any request")
	assert.Equal(t, 0, c.srv.PostCount())

	out := c.mustRun("posts", "create", "--title", "Hello CLI", "--content", "<p>Body of the post</p>", "--tags", "go, cli", "--category", "Tools")
	assert.Equal(t, "Post created: 1 - hello-cli\n", out)

	assert.Contains(t, c.mustRun("posts", "list"), "1\thello-cli\tHello CLI")
	assert.Contains(t, c.mustRun("posts", "list", "--tag", "cli"), "total: 1")
	assert.Contains(t, c.mustRun("posts", "recent", "--limit", "1"), "hello-cli")
	assert.Contains(t, c.mustRun("posts", "get", "--slug", "hello-cli"), `"excerpt": "Body of the post"`)
	assert.Contains(t, c.mustRun("posts", "update", "1", "--title", "Renamed"), "Renamed")
	assert.Contains(t, c.mustRun("posts", "get", "1"), `"category": {`)

	assert.Equal(t, "Post 1 archived: true\n", c.mustRun("posts", "archive", "1"))
	_, err = c.run("posts", "archive", "1")
	require.Error(t, err)
	assert.Contains(t, c.mustRun("posts", "archived"), "total: 1")
	assert.Equal(t, "Post 1 archived: false\n", c.mustRun("posts", "unarchive", "1"))

	assert.Contains(t, c.mustRun("tags"), "cli\tcli\t1")
	assert.Contains(t, c.mustRun("tags", "--trending", "--limit", "1"), "Total: 1")
	assert.Contains(t, c.mustRun("categories", "--all"), "tools\tTools\t1")

	assert.Equal(t, "Post deleted: 1\n", c.mustRun("posts", "delete", "1"))
	_, err = c.run("posts", "get", "1")
	require.Error(t, err)
	assert.Equal(t, "Post not found", err.Error())
}

func TestCLI_UploadImage(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--user", blogtest.AdminUsername, "--password", blogtest.AdminPassword)

	img := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nfake"), 0o600))
	out := c.mustRun("upload-image", img, "--post-id", "3")
	assert.Contains(t, out, "pic.png")
	require.Len(t, c.srv.Uploads(), 1)
	assert.Equal(t, "3", c.srv.Uploads()[0].PostID)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err := c.run("upload-image", txt)
	require.Error(t, err)

	c.srv.FailUploads("file too large")
	_, err = c.run("upload-image", img)
	require.Error(t, err)
	assert.Equal(t, "Image upload failed: file too large", err.Error())

	assert.Contains(t, c.mustRun("imagekit-auth"), `"signature": "fake-signature"`)
}

func TestCLI_Visitors(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, "0\n", c.mustRun("visitors"))
	assert.Equal(t, "1\n", c.mustRun("visitors", "--track"))
	assert.Equal(t, "1\n", c.mustRun("visitors"))
}

func TestCLI_Drafts(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--user", blogtest.AdminUsername, "--password", blogtest.AdminPassword)

	assert.Equal(t, "Draft saved: draft-create-new\n",
		c.mustRun("drafts", "save", "--title", "Draft post", "--content", "<p>Draft body text</p>", "--tags", "wip"))
	assert.Contains(t, c.mustRun("drafts", "list"), "draft-create-new")
	assert.Contains(t, c.mustRun("drafts", "show", "draft-create-new"), `"title": "Draft post"`)

	assert.Equal(t, "Post published: 1\n", c.mustRun("drafts", "publish", "draft-create-new", "--category", "Notes"))
	assert.Equal(t, 1, c.srv.PostCount())
	assert.Contains(t, c.mustRun("drafts", "list"), "Total: 0")

	c.mustRun("drafts", "save", "--mode", "edit", "--id", "1", "--title", "Edited title", "--content", "<p>Edited body</p>")
	assert.Equal(t, "Post published: 1\n", c.mustRun("drafts", "publish", "draft-edit-1"))
	assert.Contains(t, c.mustRun("posts", "get", "1"), `"title": "Edited title"`)

	c.mustRun("drafts", "save", "--title", "x")
	_, err := c.run("drafts", "publish", "draft-create-new")
	require.Error(t, err)
	c.mustRun("drafts", "discard", "draft-create-new")
	_, err = c.run("drafts", "show", "draft-create-new")
	require.Error(t, err)
}
