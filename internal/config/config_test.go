package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/promptpix?parseTime=true")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CLIPDROP_API_KEY", "cd-key")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.InitialCredits != 5 {
		t.Errorf("unexpected initial credits: %d", cfg.InitialCredits)
	}
	if cfg.PaymentCurrency != "INR" {
		t.Errorf("unexpected currency: %s", cfg.PaymentCurrency)
	}
	if cfg.ClipDropBaseURL != "https://clipdrop-api.co" {
		t.Errorf("unexpected clipdrop base url: %s", cfg.ClipDropBaseURL)
	}
	if cfg.S3Enabled() {
		t.Error("expected s3 mirror disabled without a bucket")
	}
}

func TestLoadReportsMissingVars(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected JWT_SECRET in error, got %v", err)
	}
}

func TestLoadRequiresS3SettingsWhenBucketSet(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_BUCKET", "images")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for incomplete s3 configuration")
	}
	if !strings.Contains(err.Error(), "S3_REGION") {
		t.Errorf("expected S3_REGION in error, got %v", err)
	}
}

func TestSplitList(t *testing.T) {
	origins := splitList("https://app.example.com, https://staging.example.com ,")
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", origins)
	}
	if origins[1] != "https://staging.example.com" {
		t.Errorf("unexpected origin: %s", origins[1])
	}
}
