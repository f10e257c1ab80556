package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/service"
	"github.com/MrSnakeDoc/gradle-updater/internal/utils"
)

const DefaultEndpoint = "https://services.gradle.org/versions"

// VersionInfo is one release descriptor returned by the versions endpoint.
type VersionInfo struct {
	Version string `json:"version"`
	Broken  bool   `json:"broken"`
}

// Policy decides what happens when the response does not have the expected shape.
type Policy string

const (
	// Lenient treats a missing version as "nothing to update" and a missing
	// broken flag as false.
	Lenient Policy = "lenient"
	// Strict fails with a malformed-response error on any shape mismatch.
	Strict Policy = "strict"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case Lenient, "":
		return Lenient, nil
	case Strict:
		return Strict, nil
	default:
		return "", errs.Newf(errs.Configuration, "parse policy", "unknown policy %q (want lenient or strict)", s)
	}
}

// InfoLogger receives the diagnostic dump of the fetched document.
type InfoLogger interface {
	Info(format string, args ...any)
}

type loggerFunc func(format string, args ...any)

func (f loggerFunc) Info(format string, args ...any) { f(format, args...) }

type Fetcher struct {
	Client   service.HTTPClient
	Endpoint *url.URL
	Policy   Policy
	Log      InfoLogger
}

// NewFetcher validates endpoint and fills defaults for nil arguments.
func NewFetcher(endpoint string, policy Policy, client service.HTTPClient, log InfoLogger) (*Fetcher, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := utils.ParseSecureURL(endpoint)
	if err != nil {
		return nil, errs.New(errs.Configuration, "parse endpoint", err)
	}
	if client == nil {
		client = service.NewHTTPClient(30 * time.Second)
	}
	if log == nil {
		log = loggerFunc(logger.Info)
	}
	if policy == "" {
		policy = Lenient
	}

	return &Fetcher{
		Client:   client,
		Endpoint: u,
		Policy:   policy,
		Log:      log,
	}, nil
}

// URL returns the metadata URL of stage.
func (f *Fetcher) URL(stage string) string {
	return utils.AppendPathSegment(f.Endpoint, stage)
}

// Latest fetches the latest version of stage. A nil result with a nil error
// means the lenient policy found no usable version.
func (f *Fetcher) Latest(ctx context.Context, stage string) (*VersionInfo, error) {
	target := f.URL(stage)
	logger.Debug("GET %s", target)

	resp, err := service.Get(ctx, f.Client, target)
	if errors.Is(err, service.ErrBodyTooLarge) {
		return nil, errs.New(errs.MalformedResponse, "fetch "+target, err)
	}
	if err != nil {
		return nil, errs.New(errs.Network, "fetch "+target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug("versions endpoint answered %d", resp.StatusCode)
	}

	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, errs.Newf(errs.MalformedResponse, "decode "+target,
			"status %d: %w", resp.StatusCode, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(resp.Body), "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(resp.Body)
	}
	f.Log.Info("Fetched version: %s", pretty.String())

	return f.shape(target, doc)
}

func (f *Fetcher) shape(target string, doc any) (*VersionInfo, error) {
	if doc == nil {
		return nil, errs.Newf(errs.MalformedResponse, "decode "+target, "response is null")
	}

	obj, _ := doc.(map[string]any)

	version, ok := obj["version"].(string)
	if !ok || version == "" {
		if f.Policy == Strict {
			return nil, errs.Newf(errs.MalformedResponse, "decode "+target,
				"field \"version\" is %s, want a non-empty string", describe(obj, "version"))
		}
		return nil, nil
	}

	broken, ok := obj["broken"].(bool)
	if !ok && f.Policy == Strict {
		return nil, errs.Newf(errs.MalformedResponse, "decode "+target,
			"field \"broken\" is %s, want a boolean", describe(obj, "broken"))
	}

	return &VersionInfo{Version: version, Broken: broken}, nil
}

func describe(obj map[string]any, key string) string {
	v, present := obj[key]
	switch {
	case !present:
		return "missing"
	case v == nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
