package store

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const datastoreScope = "https://www.googleapis.com/auth/datastore"

// CredentialsProvider is one strategy for opening a Firestore client.
// Providers are tried in order until one yields a client.
type CredentialsProvider interface {
	Name() string
	NewClient(ctx context.Context, databaseID string) (*firestore.Client, error)
}

// AmbientCredentials opens a client with application default
// credentials (GOOGLE_APPLICATION_CREDENTIALS, workload identity,
// gcloud auth). ProjectID is optional; when empty the project is
// detected from the environment.
type AmbientCredentials struct {
	ProjectID string
}

func (AmbientCredentials) Name() string { return "application default credentials" }

func (p AmbientCredentials) NewClient(ctx context.Context, databaseID string) (*firestore.Client, error) {
	projectID := p.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClientWithDatabase(ctx, projectID, databaseID)
}

// ServiceAccountSecret opens a client from a service account key
// stored as JSON in a secret (deployment fallback). The declared
// project_id scopes the client.
type ServiceAccountSecret struct {
	JSON []byte
}

func (ServiceAccountSecret) Name() string { return "service account secret" }

func (p ServiceAccountSecret) NewClient(ctx context.Context, databaseID string) (*firestore.Client, error) {
	projectID, err := parseServiceAccountKey(p.JSON)
	if err != nil {
		return nil, err
	}
	creds, err := google.CredentialsFromJSON(ctx, p.JSON, datastoreScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build credentials from service account key: %w", err)
	}
	return firestore.NewClientWithDatabase(ctx, projectID, databaseID, option.WithCredentials(creds))
}

func parseServiceAccountKey(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrMissingCredential
	}
	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return "", fmt.Errorf("failed to parse service account key: %w", err)
	}
	if key.ProjectID == "" {
		return "", fmt.Errorf("service account key is missing project_id")
	}
	return key.ProjectID, nil
}
