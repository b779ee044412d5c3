package render_test

import (
	"testing"

	"storyreel/internal/services/render"
)

func TestLayoutStacksTitleAboveChapter(t *testing.T) {
	title, chapter := render.Layout(1280, 720, 30, 20, 10)

	if title.X != 10 || chapter.X != 10 {
		t.Fatalf("expected both lines at the left margin, got %d and %d", title.X, chapter.X)
	}
	if chapter.Y != 720-20-10 {
		t.Fatalf("chapter line should sit one margin above the bottom, got y=%d", chapter.Y)
	}
	if title.Y != 720-30-20-20 {
		t.Fatalf("title line should sit above the chapter line, got y=%d", title.Y)
	}
	if title.Y >= chapter.Y {
		t.Fatal("title line must render above the chapter line")
	}
}

func TestLayoutZeroMargin(t *testing.T) {
	title, chapter := render.Layout(640, 480, 48, 25, 0)
	if chapter.Y != 480-25 {
		t.Fatalf("unexpected chapter y %d", chapter.Y)
	}
	if title.Y != 480-48-25 {
		t.Fatalf("unexpected title y %d", title.Y)
	}
}

func TestBottomOffsets(t *testing.T) {
	titleOffset, chapterOffset := render.BottomOffsets(30, 20, 10)
	if titleOffset != 70 {
		t.Fatalf("expected title offset 70, got %d", titleOffset)
	}
	if chapterOffset != 30 {
		t.Fatalf("expected chapter offset 30, got %d", chapterOffset)
	}
}
