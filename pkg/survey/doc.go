// Package survey keeps question answers stable across the render passes of a
// reactive widget host.
//
// A host re-evaluates the whole survey on every interaction and forgets the
// state of any widget it did not draw in the previous pass. Survey stores one
// Record per question id in the host's session bag and, before each widget is
// drawn, seeds the host's widget state with the last captured answer so a
// question that was hidden and shown again comes back with its value.
//
// Typical use inside one render pass:
//
//	s := survey.New(host, "feedback", survey.WithAutoID(false))
//	rating, err := s.Radio(ctx, "How was it?", survey.WithID("rating"),
//		survey.WithChoices("NA", "👍", "👎"))
//	if err != nil {
//		return err
//	}
//	if rating == "👍" {
//		_, err = s.TextInput(ctx, "What did you like?", survey.WithID("rating_why"))
//	}
//
// Automatic ids are positional (Q1, Q2, ...) and drift when a conditional
// branch changes which question is declared Nth. Surveys with branches should
// disable auto ids and pass WithID on every question.
package survey
