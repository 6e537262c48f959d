package validation

import (
	"github.com/jhump/annosynth/internal/csharp"
	"github.com/jhump/annosynth/processor"
)

const (
	requiredResult = `return new ValidationResult(string.Format("{0} is required", validationContext.DisplayName));`
	invalidResult  = `return new ValidationResult(string.Format("{0} is invalid", validationContext.DisplayName));`
)

// Render renders the validation attribute class for a single fact.
func Render(f Fact) processor.Artifact {
	kw := f.Type.Keyword()

	var w csharp.Writer
	w.Line(csharp.Header)
	w.Line("using System;")
	w.Line("using System.ComponentModel.DataAnnotations;")
	w.Blank()
	opened := w.OpenNamespace(f.Namespace)
	w.Line("[AttributeUsage(AttributeTargets.Property)]")
	w.Linef("public class %s : ValidationAttribute", f.ClassName)
	w.Open()
	if f.ZeroCheck {
		w.Line("public string? ZeroValueChecker { get; set; }")
		w.Blank()
	}
	w.Line("protected override ValidationResult IsValid(object value, ValidationContext validationContext)")
	w.Open()

	w.Line("if (value == null)")
	indented(&w, requiredResult)
	w.Blank()
	w.Line("if (string.IsNullOrEmpty(value.ToString()))")
	indented(&w, requiredResult)
	w.Blank()
	w.Linef("%s amount;", kw)
	w.Linef("if (!%s.TryParse(value.ToString(), out amount))", kw)
	indented(&w, invalidResult)
	w.Blank()
	if f.ZeroCheck {
		w.Line("if (amount <= 0)")
		indented(&w, invalidResult)
		w.Blank()
	}
	w.Line("return ValidationResult.Success;")

	w.Close()
	w.Close()
	if opened {
		w.Close()
	}
	return processor.Artifact{Name: ArtifactName(f.ClassName), Text: w.Bytes(), Generator: Name}
}

func indented(w *csharp.Writer, line string) {
	w.Line(csharp.Indent + line)
}
