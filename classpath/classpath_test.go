package classpath_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/javaide/classview/classpath"
	cft "github.com/javaide/classview/internal/classfile/classfiletest"
	"github.com/javaide/classview/model"
)

var (
	objectClass = cft.Class{
		Access: cft.Public | cft.Super,
		Name:   "java/lang/Object",
		Methods: []cft.Member{
			{Access: cft.Public, Name: "<init>", Descriptor: "()V"},
			{Access: cft.Public, Name: "toString", Descriptor: "()Ljava/lang/String;"},
			{Access: cft.Public, Name: "equals", Descriptor: "(Ljava/lang/Object;)Z"},
		},
	}
	pointClass = cft.Class{
		Access:     cft.Public | cft.Super,
		Name:       "com/example/Point",
		Super:      "java/lang/Object",
		Interfaces: []string{"java/io/Serializable"},
		Fields: []cft.Member{
			{Access: cft.Public, Name: "x", Descriptor: "I"},
			{Access: cft.Public, Name: "tags", Descriptor: "[[Ljava/lang/String;"},
			{Access: cft.Public, Name: "broken", Descriptor: "Q"},
		},
		Methods: []cft.Member{
			{Access: cft.Static, Name: "<clinit>", Descriptor: "()V"},
			{Access: cft.Public, Name: "<init>", Descriptor: "(II)V"},
			{Access: cft.Public, Name: "scale", Descriptor: "(D)Lcom/example/Point;"},
			{Access: cft.Public, Name: "mix", Descriptor: "(ILjava/lang/String;X)V"},
		},
	}
	entryClass = cft.Class{
		Access: cft.Public | cft.Interface | cft.Abstract,
		Name:   "com/example/Map$Entry",
		Super:  "java/lang/Object",
	}
)

func writeClass(t *testing.T, root string, c cft.Class) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(c.Name)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, c.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeJar(t *testing.T, path string, classes ...cft.Class) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	mf, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatal(err)
	}
	mf.Write([]byte("Manifest-Version: 1.0\n"))
	for _, c := range classes {
		w, err := zw.Create(c.Name + ".class")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(c.Bytes()); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadClassFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeClass(t, dir, pointClass)

	cp, err := classpath.Open([]string{dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cp.Close()

	raw, err := cp.ReadClass("com.example.Point")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if raw.Name != "com.example.Point" || raw.Superclass != "java.lang.Object" {
		t.Errorf("name = %q, super = %q", raw.Name, raw.Superclass)
	}
	if raw.Modifiers != model.Public {
		t.Errorf("Modifiers = %s, want public only", raw.Modifiers)
	}
	if !slices.Equal(raw.Interfaces, []string{"java.io.Serializable"}) {
		t.Errorf("Interfaces = %v", raw.Interfaces)
	}

	if len(raw.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(raw.Fields))
	}
	if got := raw.Fields[1].Type; got != (model.TypeRef{Name: "java.lang.String", Dims: 2}) {
		t.Errorf("tags type = %+v", got)
	}
	if !raw.Fields[2].Type.IsZero() {
		t.Errorf("undecodable descriptor produced %+v, want zero TypeRef", raw.Fields[2].Type)
	}

	if len(raw.Constructors) != 1 || len(raw.Constructors[0].Params) != 2 {
		t.Errorf("Constructors = %+v, want one (int, int)", raw.Constructors)
	}
	if len(raw.Methods) != 2 || raw.Methods[0].Name != "scale" {
		t.Fatalf("Methods = %+v, want [scale mix]", raw.Methods)
	}
	scale := raw.Methods[0]
	if scale.Type.Name != "com.example.Point" || scale.Params[0].Name != "double" {
		t.Errorf("scale = %+v", scale)
	}

	mix := raw.Methods[1]
	if len(mix.Params) != 3 {
		t.Fatalf("mix has %d params, want 3 with the undecodable one kept", len(mix.Params))
	}
	if mix.Params[0].Name != "int" || mix.Params[1].Name != "java.lang.String" || !mix.Params[2].IsZero() {
		t.Errorf("mix params = %+v", mix.Params)
	}
	if mix.Type.Name != "void" {
		t.Errorf("mix return = %+v, want void", mix.Type)
	}
}

func TestPartialDescriptorKeepsArity(t *testing.T) {
	cp := classpath.FromFS(fstest.MapFS{
		"java/lang/Object.class":  {Data: objectClass.Bytes()},
		"com/example/Point.class": {Data: pointClass.Bytes()},
	})
	reg := model.NewRegistry(cp)
	point, err := reg.Resolve("com.example.Point")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	mix, ok := point.FindMethod("mix", nil)
	if !ok {
		t.Fatal("mix not found")
	}
	if got := model.Accept(mix, "mi").Insert; got != "mix(" {
		t.Errorf("Accept insert = %q, want mix(", got)
	}
	if _, ok := point.FindMethodOverload("mix", nil); ok {
		t.Error("FindMethodOverload matched mix with no arguments")
	}
	if m, ok := point.FindMethodOverload("mix", []model.TypeRef{{Name: "int"}, {Name: "java.lang.String"}, {Name: "double"}}); !ok || m != mix {
		t.Error("zero parameter type did not accept an argument")
	}
}

func TestReadClassFromJar(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "rt.jar")
	writeJar(t, jar, objectClass, entryClass)

	cp, err := classpath.Open([]string{jar})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cp.Close()

	object, err := cp.ReadClass("java.lang.Object")
	if err != nil {
		t.Fatalf("ReadClass(Object): %v", err)
	}
	if object.Superclass != "" {
		t.Errorf("Object superclass = %q, want none", object.Superclass)
	}

	entry, err := cp.ReadClass("com.example.Map$Entry")
	if err != nil {
		t.Fatalf("ReadClass(Map$Entry): %v", err)
	}
	if !entry.Modifiers.Has(model.Interface) {
		t.Errorf("Map$Entry modifiers = %s, want interface", entry.Modifiers)
	}
}

func TestEarlierEntryShadows(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	patched := pointClass
	patched.Fields = nil
	writeClass(t, first, patched)
	writeClass(t, second, pointClass)

	cp, err := classpath.Open([]string{first, second})
	if err != nil {
		t.Fatal(err)
	}
	defer cp.Close()

	raw, err := cp.ReadClass("com.example.Point")
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Fields) != 0 {
		t.Errorf("read %d fields, want the shadowing copy with none", len(raw.Fields))
	}

	var listed []string
	for name := range cp.Classes() {
		listed = append(listed, name)
	}
	if !slices.Equal(listed, []string{"com.example.Point"}) {
		t.Errorf("Classes = %v, want one entry", listed)
	}
}

func TestReadClassNotFound(t *testing.T) {
	cp := classpath.FromFS(fstest.MapFS{})
	_, err := cp.ReadClass("com.example.Missing")
	if !errors.Is(err, model.ErrClassNotFound) {
		t.Errorf("err = %v, want ErrClassNotFound", err)
	}
}

func TestReadClassCorrupt(t *testing.T) {
	cp := classpath.FromFS(fstest.MapFS{
		"com/example/Bad.class": {Data: []byte{0xCA, 0xFE}},
	})
	_, err := cp.ReadClass("com.example.Bad")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, model.ErrClassNotFound) {
		t.Errorf("corrupt class reported as missing: %v", err)
	}
}

func TestExclude(t *testing.T) {
	fsys := fstest.MapFS{
		"com/example/Point.class":         {Data: pointClass.Bytes()},
		"com/example/internal/Impl.class": {Data: objectClass.Bytes()},
		"com/example/package-info.class":  {Data: objectClass.Bytes()},
		"module-info.class":               {Data: objectClass.Bytes()},
		"META-INF/MANIFEST.MF":            {Data: []byte("Manifest-Version: 1.0\n")},
	}
	dir := t.TempDir()
	for name, f := range fsys {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cp, err := classpath.Open([]string{dir}, classpath.WithExclude("internal"))
	if err != nil {
		t.Fatal(err)
	}
	defer cp.Close()

	var listed []string
	for name := range cp.Classes() {
		listed = append(listed, name)
	}
	if !slices.Equal(listed, []string{"com.example.Point"}) {
		t.Errorf("Classes = %v, want [com.example.Point]", listed)
	}

	if _, err := cp.ReadClass("com.example.internal.Impl"); !errors.Is(err, model.ErrClassNotFound) {
		t.Errorf("excluded class: err = %v, want ErrClassNotFound", err)
	}
}

func TestOpenInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := classpath.Open([]string{dir, notes}); !errors.Is(err, classpath.ErrInvalidEntry) {
		t.Errorf("err = %v, want ErrInvalidEntry", err)
	}
	if _, err := classpath.Open([]string{filepath.Join(dir, "missing.jar")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestClosed(t *testing.T) {
	cp, err := classpath.Open([]string{t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if err := cp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := cp.ReadClass("java.lang.Object"); !errors.Is(err, classpath.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestRegistryOverClasspath(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "lib.jar")
	writeJar(t, jar, objectClass, pointClass)

	cp, err := classpath.Open([]string{jar})
	if err != nil {
		t.Fatal(err)
	}
	defer cp.Close()

	reg := model.NewRegistry(cp)
	point, err := reg.Resolve("com.example.Point")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	object, ok := point.Superclass()
	if !ok || object.QualifiedName() != "java.lang.Object" {
		t.Fatalf("Superclass = %v, %v", object, ok)
	}
	if m, ok := point.FindMethod("toString", nil); !ok || m.ReturnType().Name != "java.lang.String" {
		t.Error("toString not inherited from Object")
	}
	if got := point.InterfaceNames(); !slices.Equal(got, []string{"java.io.Serializable"}) {
		t.Errorf("InterfaceNames = %v", got)
	}

	ctors := point.Constructors()
	if len(ctors) != 1 || ctors[0].Name() != "Point" {
		t.Errorf("Constructors = %v", ctors)
	}
}

func TestSyntheticAttributeHidesMember(t *testing.T) {
	outer := cft.Class{
		Access: cft.Public | cft.Super,
		Name:   "com/example/Outer$Inner",
		Super:  "java/lang/Object",
		Fields: []cft.Member{
			{Access: cft.Final, Name: "this$0", Descriptor: "Lcom/example/Outer;", Attributes: []cft.Attribute{cft.SyntheticAttribute}},
			{Access: cft.Public, Name: "value", Descriptor: "I"},
		},
	}
	cp := classpath.FromFS(fstest.MapFS{
		"java/lang/Object.class":        {Data: objectClass.Bytes()},
		"com/example/Outer$Inner.class": {Data: outer.Bytes()},
	})

	raw, err := cp.ReadClass("com.example.Outer$Inner")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !raw.Fields[0].Modifiers.Has(model.Synthetic) {
		t.Errorf("this$0 modifiers = %s, want synthetic", raw.Fields[0].Modifiers)
	}

	reg := model.NewRegistry(cp, model.WithVisibility(model.VisibilityPackage))
	inner, err := reg.Resolve("com.example.Outer$Inner")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := inner.FindField("this$0"); ok {
		t.Error("synthetic field was modeled")
	}
	if _, ok := inner.FindField("value"); !ok {
		t.Error("value field missing")
	}
}
