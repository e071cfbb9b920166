//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client returns a path-style client pointing at LocalStack.
func S3Client(t *testing.T) *s3.Client {
	t.Helper()
	if awsCfg.Region == "" {
		t.Fatal("AWS Config not initialized (TestMain didn't run?)")
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
}

// SeedBucket creates bucket and uploads files, keyed by object key.
func SeedBucket(t *testing.T, bucket string, files map[string]string) {
	t.Helper()
	client := S3Client(t)
	ctx := context.Background()

	if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		t.Fatalf("Failed to create bucket %s: %v", bucket, err)
	}
	for key, body := range files {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader([]byte(body)),
		})
		if err != nil {
			t.Fatalf("Failed to upload s3://%s/%s: %v", bucket, key, err)
		}
	}
}

// ReadObject downloads one object.
func ReadObject(t *testing.T, bucket, key string) []byte {
	t.Helper()
	out, err := S3Client(t).GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		t.Fatalf("Failed to read s3://%s/%s: %v", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		t.Fatalf("Failed to read s3://%s/%s: %v", bucket, key, err)
	}
	return data
}

// GetBinaryPath builds CLI and returns binary path
func GetBinaryPath(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "linkpath")
	// Navigate to root
	rootDir := "../../"
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/linkpath")
	cmd.Dir = rootDir
	// Inherit env
	cmd.Env = os.Environ()

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Build failed: %s", out)
	}
	return binPath
}

// RunCLI runs the binary against LocalStack with an empty HOME and
// returns stdout and stderr.
func RunCLI(t *testing.T, bin string, args ...string) (string, string, error) {
	t.Helper()
	base := []string{"--s3-endpoint", endpointURL, "--region", region, "--skip-telemetry", "--no-color"}
	cmd := exec.Command(bin, append(base, args...)...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
