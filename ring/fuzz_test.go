package ring

import "testing"

// Fuzz a random op stream against a slice model. Each byte picks an op.
func FuzzBuffer_Model(f *testing.F) {
	f.Add(uint8(4), []byte{0, 0, 0, 1, 2, 3, 0})
	f.Add(uint8(2), []byte{0, 0, 2, 2, 1})
	f.Add(uint8(16), []byte{0, 0, 0, 0, 0, 4, 0, 3})

	f.Fuzz(func(t *testing.T, capacity uint8, ops []byte) {
		c := int(capacity%32) + 2
		b, err := New[int](c)
		if err != nil {
			t.Fatal(err)
		}
		var model []int

		for i, op := range ops {
			switch op % 5 {
			case 0:
				ok := b.Add(i)
				want := len(model) < c-1
				if ok != want {
					t.Fatalf("Add: got %v want %v (len=%d cap=%d)", ok, want, len(model), c)
				}
				if ok {
					model = append(model, i)
				}
			case 1:
				v, ok := b.Shift()
				if ok != (len(model) > 0) {
					t.Fatalf("Shift ok=%v with model len %d", ok, len(model))
				}
				if ok {
					if v != model[0] {
						t.Fatalf("Shift: got %d want %d", v, model[0])
					}
					model = model[1:]
				}
			case 2:
				v, ok := b.Pop()
				if ok != (len(model) > 0) {
					t.Fatalf("Pop ok=%v with model len %d", ok, len(model))
				}
				if ok {
					if v != model[len(model)-1] {
						t.Fatalf("Pop: got %d want %d", v, model[len(model)-1])
					}
					model = model[:len(model)-1]
				}
			case 3:
				if v, ok := b.PeekFirst(); ok && v != model[0] {
					t.Fatalf("PeekFirst: got %d want %d", v, model[0])
				}
			case 4:
				b.Clear()
				model = model[:0]
			}
			if b.Len() != len(model) {
				t.Fatalf("Len: got %d want %d", b.Len(), len(model))
			}
		}
	})
}
