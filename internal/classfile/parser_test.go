package classfile_test

import (
	"errors"
	"testing"

	"github.com/javaide/classview/internal/classfile"
	"github.com/javaide/classview/internal/classfile/classfiletest"
	"github.com/javaide/classview/internal/stream"
)

func TestParseClass(t *testing.T) {
	t.Parallel()
	data := classfiletest.Class{
		Access:     classfiletest.Public | classfiletest.Super,
		Name:       "com.example.Point",
		Super:      "java.lang.Object",
		Interfaces: []string{"java.io.Serializable", "java.lang.Comparable"},
		Fields: []classfiletest.Member{
			{Access: classfiletest.Public, Name: "x", Descriptor: "I"},
			{Access: classfiletest.Private, Name: "cache", Descriptor: "Ljava/lang/String;"},
		},
		Methods: []classfiletest.Member{
			{Access: classfiletest.Public, Name: "<init>", Descriptor: "(II)V"},
			{Access: classfiletest.Public, Name: "getX", Descriptor: "()I"},
		},
	}.Bytes()

	f, err := classfile.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.MajorVersion != 52 {
		t.Errorf("MajorVersion = %d, want 52", f.MajorVersion)
	}
	if f.ThisClass != "com/example/Point" {
		t.Errorf("ThisClass = %q", f.ThisClass)
	}
	if f.SuperClass != "java/lang/Object" {
		t.Errorf("SuperClass = %q", f.SuperClass)
	}
	if !f.AccessFlags.Has(classfile.AccPublic) {
		t.Errorf("AccessFlags = %#x, want public", f.AccessFlags)
	}
	if len(f.Interfaces) != 2 || f.Interfaces[1] != "java/lang/Comparable" {
		t.Errorf("Interfaces = %v", f.Interfaces)
	}
	if len(f.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(f.Fields))
	}
	if f.Fields[1].Name != "cache" || !f.Fields[1].AccessFlags.Has(classfile.AccPrivate) {
		t.Errorf("Fields[1] = %+v", f.Fields[1])
	}
	if len(f.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(f.Methods))
	}
	if f.Methods[0].Name != classfile.InitName || f.Methods[0].Descriptor != "(II)V" {
		t.Errorf("Methods[0] = %+v", f.Methods[0])
	}
}

func TestParseRootClass(t *testing.T) {
	t.Parallel()
	data := classfiletest.Class{Access: classfiletest.Public, Name: "java.lang.Object"}.Bytes()

	f, err := classfile.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.SuperClass != "" {
		t.Errorf("SuperClass = %q, want empty", f.SuperClass)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	if _, err := classfile.Parse([]byte{0xDE, 0xAD}); !errors.Is(err, classfile.ErrNotClassFile) {
		t.Errorf("bad magic: err = %v, want ErrNotClassFile", err)
	}

	future := classfiletest.Class{Major: 99, Name: "a.B"}.Bytes()
	if _, err := classfile.Parse(future); !errors.Is(err, classfile.ErrUnsupportedVersion) {
		t.Errorf("future version: err = %v, want ErrUnsupportedVersion", err)
	}

	valid := classfiletest.Class{Name: "a.B", Super: "java.lang.Object"}.Bytes()
	_, err := classfile.Parse(valid[:len(valid)-3])
	var pe *classfile.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("truncated: err = %v, want *ParseError", err)
	}
	if pe.Section == "" {
		t.Error("ParseError.Section is empty")
	}
}

func TestParseSyntheticAttribute(t *testing.T) {
	t.Parallel()
	data := classfiletest.Class{
		Access:     classfiletest.Public,
		Name:       "com.example.Outer$1",
		Super:      "java.lang.Object",
		Attributes: []classfiletest.Attribute{classfiletest.SyntheticAttribute},
		Fields: []classfiletest.Member{
			{Access: classfiletest.Final, Name: "this$0", Descriptor: "Lcom/example/Outer;", Attributes: []classfiletest.Attribute{classfiletest.SyntheticAttribute}},
			{Access: classfiletest.Public, Name: "count", Descriptor: "I"},
		},
		Methods: []classfiletest.Member{
			{Access: classfiletest.Static, Name: "access$000", Descriptor: "()I", Attributes: []classfiletest.Attribute{
				{Name: "Code", Body: []byte{0, 1, 0, 0, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0}},
				classfiletest.SyntheticAttribute,
			}},
		},
	}.Bytes()

	f, err := classfile.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !f.AccessFlags.Has(classfile.AccSynthetic) {
		t.Errorf("class AccessFlags = %#x, want synthetic", f.AccessFlags)
	}
	if !f.Fields[0].AccessFlags.Has(classfile.AccSynthetic | classfile.AccFinal) {
		t.Errorf("this$0 AccessFlags = %#x, want final synthetic", f.Fields[0].AccessFlags)
	}
	if f.Fields[1].AccessFlags.Has(classfile.AccSynthetic) {
		t.Errorf("count AccessFlags = %#x, want not synthetic", f.Fields[1].AccessFlags)
	}
	if !f.Methods[0].AccessFlags.Has(classfile.AccSynthetic | classfile.AccStatic) {
		t.Errorf("access$000 AccessFlags = %#x, want static synthetic", f.Methods[0].AccessFlags)
	}
}

func TestParseSyntheticWithBody(t *testing.T) {
	t.Parallel()
	data := classfiletest.Class{
		Name:  "a.B",
		Super: "java.lang.Object",
		Methods: []classfiletest.Member{{Name: "run", Descriptor: "()V", Attributes: []classfiletest.Attribute{
			{Name: "Synthetic", Body: []byte{1}},
		}}},
	}.Bytes()

	_, err := classfile.Parse(data)
	if !errors.Is(err, classfile.ErrInvalidAttribute) {
		t.Fatalf("err = %v, want ErrInvalidAttribute", err)
	}
	var pe *classfile.ParseError
	if !errors.As(err, &pe) || pe.Section != "methods" {
		t.Errorf("err = %v, want a ParseError in methods", err)
	}
}

func TestParseAttributeOverrunsData(t *testing.T) {
	t.Parallel()
	valid := classfiletest.Class{
		Name:       "a.B",
		Super:      "java.lang.Object",
		Attributes: []classfiletest.Attribute{{Name: "SourceFile", Body: []byte{0, 1}}},
	}.Bytes()

	// Drop the last body byte so the declared length runs past the end.
	_, err := classfile.Parse(valid[:len(valid)-1])
	if !errors.Is(err, stream.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestParseTrailingData(t *testing.T) {
	t.Parallel()
	valid := classfiletest.Class{Name: "a.B", Super: "java.lang.Object"}.Bytes()
	if _, err := classfile.Parse(valid); err != nil {
		t.Fatalf("Parse(valid): %v", err)
	}

	_, err := classfile.Parse(append(valid, 0xCA, 0xFE))
	if !errors.Is(err, classfile.ErrTrailingData) {
		t.Fatalf("err = %v, want ErrTrailingData", err)
	}
	var pe *classfile.ParseError
	if !errors.As(err, &pe) || pe.Offset != len(valid) {
		t.Errorf("err = %v, want a ParseError at offset %d", err, len(valid))
	}
}
