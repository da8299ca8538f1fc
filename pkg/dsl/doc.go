/*
Package dsl provides a Go DSL for programmatically constructing animator scenes.

It allows developers to describe animator trees with a type-safe, fluent builder
instead of YAML or JSON files. This is particularly useful for generated
layouts, unit tests, and IDE autocompletion.

Example usage:

	b := dsl.New("menu").
		General(map[string]any{"duration": map[string]any{"enter": 0.25}})

	root := b.Root("menu").Manager(domain.ManagerSequence).Combine()
	root.Child("title").Enter(0.1)
	root.Child("items").
		Manager(domain.ManagerStagger).
		Stagger(0.05).
		Children("item-1", "item-2", "item-3")

	sc, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	mounted, err := scene.NewSystem(sc, animator.WithClock(clock))
*/
package dsl
