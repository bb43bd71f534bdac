package estate_test

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Black-box tests for the estate site. The image is built once from
 * cmd/estate/Dockerfile and each test gets a fresh container.
 */

const testImageName = "estate-site-test:latest"

// imageErr is set when the image could not be built; every test skips on it.
var imageErr error

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		imageErr = fmt.Errorf("short mode")
		os.Exit(m.Run())
	}

	if _, err := exec.LookPath("docker"); err != nil {
		imageErr = err
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building estate Docker image...")
	if imageErr = buildDockerImage(); imageErr != nil {
		fmt.Fprintf(os.Stdout, " failed: %v\n", imageErr)
	} else {
		fmt.Fprintf(os.Stdout, " done\n")
	}

	exitCode := m.Run()

	if imageErr == nil {
		fmt.Fprintf(os.Stdout, "Cleaning up estate Docker image...")
		cleanupDockerImage()
		fmt.Fprintf(os.Stdout, " done\n")
	}

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/estate/Dockerfile",
		"../../../")
	cmd.Stdout = io.Discard
	cmd.Stderr = nil
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupSite starts the site in a container and returns its base URL. Rate
// limits are relaxed unless defaultLimits is set.
func setupSite(t *testing.T, defaultLimits bool) string {
	t.Helper()
	if imageErr != nil {
		t.Skipf("estate image unavailable: %v", imageErr)
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	env := map[string]string{
		"ENV":            "test",
		"LOG_LEVEL":      "info",
		"LOG_FORMAT":     "json",
		"SESSION_SECRET": strings.Repeat("e2e-secret-", 4),
	}
	if !defaultLimits {
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_BURST"] = "1000"
		env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
		env["RATELIMIT_MODERATE_BURST"] = "1000"
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// browser keeps cookies and reports redirects instead of following them.
type browser struct {
	baseURL string
	client  *http.Client
}

func newBrowser(t *testing.T, baseURL string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		baseURL: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type page struct {
	Code     int
	Location string
	Body     string
}

func (b *browser) get(t *testing.T, path string) page {
	t.Helper()
	resp, err := b.client.Get(b.baseURL + path)
	require.NoError(t, err)
	return readPage(t, resp)
}

func (b *browser) post(t *testing.T, path string, form url.Values) page {
	t.Helper()
	resp, err := b.client.PostForm(b.baseURL+path, form)
	require.NoError(t, err)
	return readPage(t, resp)
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return page{Code: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(body)}
}
