package format_test

import (
	"errors"
	"testing"

	"github.com/okian/xpdash/internal/domain/format"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given style names", t, func() {
		kb, err := format.New("")
		So(err, ShouldBeNil)
		So(kb.Style(), ShouldEqual, format.StyleKB)

		plain, err := format.New(" Plain ")
		So(err, ShouldBeNil)
		So(plain.Style(), ShouldEqual, format.StylePlain)

		_, err = format.New("mb")
		So(errors.Is(err, format.ErrUnknownStyle), ShouldBeTrue)
	})
}

func TestKB(t *testing.T) {
	Convey("Given the kB formatter", t, func() {
		f := format.KB{}

		So(f.XP(0), ShouldEqual, "0")
		So(f.XP(12345), ShouldEqual, "12.3 kB")
		So(f.XP(500), ShouldEqual, "0.5 kB")
		So(f.XP(99999), ShouldEqual, "100.0 kB")
		So(f.XP(100000), ShouldEqual, "100 kB")
		So(f.XP(734500), ShouldEqual, "735 kB")
	})
}

func TestPlain(t *testing.T) {
	Convey("Given the plain formatter", t, func() {
		f, err := format.New(format.StylePlain)
		So(err, ShouldBeNil)

		So(f.XP(0), ShouldEqual, "0")
		So(f.XP(999), ShouldEqual, "999")
		So(f.XP(12345), ShouldEqual, "12,345")
		So(f.XP(1234567.6), ShouldEqual, "1,234,568")
	})
}
