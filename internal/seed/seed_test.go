package seed

import "testing"

func TestComputeCounts_Default(t *testing.T) {
	text, image := computeCounts(10, defaultDistribution)
	if text+image != 10 {
		t.Fatalf("sum mismatch: got %d", text+image)
	}
	if text != 6 || image != 4 {
		t.Fatalf("unexpected default counts: text=%d, image=%d", text, image)
	}
}

func TestComputeCounts_RemainderGoesToText(t *testing.T) {
	text, image := computeCounts(7, defaultDistribution)
	if text+image != 7 {
		t.Fatalf("sum mismatch: got %d", text+image)
	}
	if image != 2 || text != 5 {
		t.Fatalf("unexpected counts: text=%d, image=%d", text, image)
	}
}

func TestFactory_DryRunAssignsIDs(t *testing.T) {
	factory := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	user, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected dry-run user to get a synthetic ID")
	}

	post, err := factory.CreatePost(user, PostKindImage)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected dry-run post to get a synthetic ID")
	}
	if post.ImageURL == "" {
		t.Fatal("expected image post to carry an image URL")
	}
	if post.ID == user.ID {
		t.Fatal("expected distinct synthetic IDs")
	}
}
