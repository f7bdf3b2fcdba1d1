package provider_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physmodel/internal/provider"
)

type model interface {
	Name() string
}

type scheme interface {
	Name() string
}

type named struct{ name string }

func (n *named) Name() string { return n.name }

func newNamed(name string) model { return &named{name: name} }

var _ = Describe("Registry", func() {
	var r *provider.Registry

	BeforeEach(func() {
		r = provider.NewRegistry()
	})

	Describe("Register and Create", func() {
		It("creates an instance named after the provider by default", func() {
			Expect(provider.Register[model](r, "Framework", "Null", newNamed)).To(Succeed())

			m, err := provider.Create[model](r, "Framework", "Null", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("Null"))
		})

		It("passes an explicit instance name to the factory", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			m, err := provider.Create[model](r, "Framework", "Null", "fluid")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("fluid"))
		})

		It("returns a fresh instance on every call", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			a, _ := provider.Create[model](r, "Framework", "Null", "")
			b, _ := provider.Create[model](r, "Framework", "Null", "")
			Expect(a).NotTo(BeIdenticalTo(b))
		})
	})

	Describe("duplicate registration", func() {
		It("is rejected within one scope", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			err := provider.Register[model](r, "Framework", "Null", newNamed)
			Expect(err).To(MatchError(provider.ErrDuplicateProvider))

			var perr *provider.Error
			Expect(err).To(BeAssignableToTypeOf(perr))
		})

		It("panics through MustRegister", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			Expect(func() {
				provider.MustRegister[model](r, "Framework", "Null", newNamed)
			}).To(Panic())
		})

		It("keeps the first factory", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)
			_ = provider.Register[model](r, "Framework", "Null", func(string) model { return &named{name: "second"} })

			m, err := provider.Create[model](r, "Framework", "Null", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("Null"))
		})
	})

	Describe("unknown provider", func() {
		It("fails without calling any factory", func() {
			calls := 0
			provider.MustRegister[model](r, "Framework", "Null", func(name string) model {
				calls++
				return newNamed(name)
			})

			m, err := provider.Create[model](r, "Framework", "Euler2D", "")
			Expect(err).To(MatchError(provider.ErrUnknownProvider))
			Expect(m).To(BeNil())
			Expect(calls).To(BeZero())
		})

		It("lists the available names", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)
			provider.MustRegister[model](r, "Framework", "Heat", newNamed)

			_, err := provider.Create[model](r, "Framework", "Euler2D", "")
			Expect(err.Error()).To(ContainSubstring("available: Heat, Null"))

			var perr *provider.Error
			Expect(err).To(BeAssignableToTypeOf(perr))
			Expect(err.(*provider.Error).Known).To(Equal([]string{"Heat", "Null"}))
		})
	})

	Describe("invalid registrations", func() {
		It("rejects an empty name", func() {
			Expect(provider.Register[model](r, "Framework", "", newNamed)).To(MatchError(provider.ErrInvalidProvider))
		})

		It("rejects a nil factory", func() {
			Expect(provider.Register[model](r, "Framework", "Null", nil)).To(MatchError(provider.ErrInvalidProvider))
		})
	})

	Describe("scoping", func() {
		It("separates libraries", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			Expect(provider.Register[model](r, "Plugins", "Null", newNamed)).To(Succeed())
			Expect(provider.Has[model](r, "Plugins", "Null")).To(BeTrue())

			_, err := provider.Create[model](r, "Other", "Null", "")
			Expect(err).To(MatchError(provider.ErrUnknownProvider))
		})

		It("separates contracts", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)

			Expect(provider.Register[scheme](r, "Framework", "Null", func(name string) scheme {
				return &named{name: name}
			})).To(Succeed())
			Expect(provider.Names[scheme](r, "Framework")).To(Equal([]string{"Null"}))
			Expect(provider.Has[scheme](r, "Framework", "Heat")).To(BeFalse())
		})

		It("reports populated scopes", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)
			provider.MustRegister[model](r, "Plugins", "Heat", newNamed)

			scopes := r.Scopes()
			Expect(scopes).To(HaveLen(2))
			Expect(scopes[0].Library).To(Equal("Framework"))
			Expect(scopes[0].Contract).To(HaveSuffix("model"))
			Expect(scopes[1].Names).To(Equal([]string{"Heat"}))
		})
	})

	Describe("enumeration", func() {
		It("returns sorted names", func() {
			for _, name := range []string{"Null", "Heat", "LinearAdv"} {
				provider.MustRegister[model](r, "Framework", name, newNamed)
			}
			Expect(provider.Names[model](r, "Framework")).To(Equal([]string{"Heat", "LinearAdv", "Null"}))
		})

		It("is empty for an unknown scope", func() {
			Expect(provider.Names[model](r, "Nothing")).To(BeEmpty())
		})
	})

	Describe("Freeze", func() {
		It("rejects later registrations but keeps lookups working", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)
			r.Freeze()
			Expect(r.Frozen()).To(BeTrue())

			Expect(provider.Register[model](r, "Framework", "Heat", newNamed)).To(MatchError(provider.ErrRegistryFrozen))
			Expect(provider.Has[model](r, "Framework", "Heat")).To(BeFalse())

			m, err := provider.Create[model](r, "Framework", "Null", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("Null"))
		})

		It("serves concurrent lookups", func() {
			provider.MustRegister[model](r, "Framework", "Null", newNamed)
			r.Freeze()

			var wg sync.WaitGroup
			errs := make([]error, 16)
			for i := range errs {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					defer GinkgoRecover()
					_, errs[idx] = provider.Create[model](r, "Framework", "Null", "")
				}(i)
			}
			wg.Wait()

			for _, err := range errs {
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})
})
