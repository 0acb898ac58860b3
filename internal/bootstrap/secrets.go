package bootstrap

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Secrets path
// projects/{project}/secrets/{name}/versions/{version}

// SecretVersionName expands a secret reference to a version resource name.
// A bare name is resolved in projectID; a reference without a version
// gets /versions/latest.
func SecretVersionName(projectID, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("secret reference is empty")
	}
	if !strings.HasPrefix(ref, "projects/") {
		if projectID == "" {
			return "", fmt.Errorf("secret %q needs a project id", ref)
		}
		ref = fmt.Sprintf("projects/%s/secrets/%s", projectID, ref)
	}
	if !strings.Contains(ref, "/versions/") {
		ref += "/versions/latest"
	}
	return ref, nil
}

// FetchSecret reads one secret version from Secret Manager.
func FetchSecret(ctx context.Context, projectID, ref string) ([]byte, error) {
	name, err := SecretVersionName(projectID, ref)
	if err != nil {
		return nil, err
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secret manager client: %w", err)
	}
	defer client.Close()

	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("secret %s does not exist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("access secret %s: %w", name, err)
	}
	if len(res.GetPayload().GetData()) == 0 {
		return nil, fmt.Errorf("secret %s is empty", name)
	}
	return res.GetPayload().GetData(), nil
}
