package shaders

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestShaderer(t *testing.T) {
	Convey("Given the embedded shader templates", t, func() {
		s, err := NewShaderer()
		So(err, ShouldBeNil)

		Convey("both quad shaders are available", func() {
			So(s.TemplateNames(), ShouldContain, "quad.vert")
			So(s.TemplateNames(), ShouldContain, "quad.frag")
		})

		Convey("the GLSL version is filled in", func() {
			src, err := s.GetShaderSource("quad.vert", &ShaderData{GLSLVersion: DefaultGLSLVersion})
			So(err, ShouldBeNil)
			So(strings.HasPrefix(src, "#version 410 core"), ShouldBeTrue)
			So(src, ShouldContainSubstring, "uniform vec2 offset;")
		})

		Convey("the fragment shader knows untextured quads", func() {
			src, err := s.GetShaderSource("quad.frag", &ShaderData{GLSLVersion: "330"})
			So(err, ShouldBeNil)
			So(src, ShouldStartWith, "#version 330 core")
			So(src, ShouldContainSubstring, "uniform bool textured;")
		})

		Convey("unknown templates are an error", func() {
			_, err := s.GetShaderSource("nope.frag", &ShaderData{})
			So(err, ShouldNotBeNil)
		})
	})
}
