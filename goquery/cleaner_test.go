package goquery_test

import (
	"testing"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("removes noise elements", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<div class="fontsize no-print">أ+ أ-</div>
	<span class="share-icon">شارك</span>
	<p>المادة الأولى</p>
	<div class="subject-share"><a href="#">تويتر</a></div>
	<p>المادة الثانية</p>
</div>`

		cleaner := goquery.NewCleaner([]string{
			"div.fontsize.no-print",
			"span.share-icon",
			"div.subject-share",
		})

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "المادة الأولى\nالمادة الثانية", text)
	})

	t.Run("separates block elements with newlines", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<h1>نظام العمل</h1>
	<p>الفصل الأول</p>
	<ul><li>أولاً</li><li>ثانياً</li></ul>
	<div>خاتمة</div>
</div>`

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "نظام العمل\nالفصل الأول\nأولاً\nثانياً\nخاتمة", text)
	})

	t.Run("keeps inline elements on one line", func(t *testing.T) {
		t.Parallel()

		html := `<p>يعمل <b>النظام</b> من <em>تاريخ</em> النشر</p>`

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "يعمل النظام من تاريخ النشر", text)
	})

	t.Run("br starts a new line", func(t *testing.T) {
		t.Parallel()

		html := `<p>السطر الأول<br>السطر الثاني</p>`

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "السطر الأول\nالسطر الثاني", text)
	})

	t.Run("collapses whitespace inside lines", func(t *testing.T) {
		t.Parallel()

		html := "<p>المادة   \t الأولى \n من   النظام</p>"

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "المادة الأولى من النظام", text)
	})

	t.Run("drops blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<div><p>أولى</p><p>   </p><p></p><p>ثانية</p></div>`

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "أولى\nثانية", text)
	})

	t.Run("ignores script and style content", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<script>var x = 1;</script>
	<style>.a { color: red; }</style>
	<p>النص الظاهر</p>
</div>`

		cleaner := goquery.NewCleaner(nil)

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "النص الظاهر", text)
	})

	t.Run("returns ENOTFOUND when nothing visible remains", func(t *testing.T) {
		t.Parallel()

		html := `<div><span class="share-icon">شارك</span></div>`

		cleaner := goquery.NewCleaner([]string{"span.share-icon"})

		_, err := cleaner.Clean(html)

		require.Error(t, err)
		assert.Equal(t, nezamdoc.ENOTFOUND, nezamdoc.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for empty fragment", func(t *testing.T) {
		t.Parallel()

		cleaner := goquery.NewCleaner(nil)

		_, err := cleaner.Clean("")

		require.Error(t, err)
		assert.Equal(t, nezamdoc.ENOTFOUND, nezamdoc.ErrorCode(err))
	})
}

func TestMergeNested(t *testing.T) {
	t.Parallel()

	outerSel := `span.selectionShareable[style="color: #993300;"]`
	innerSel := "span.selectionShareable"

	t.Run("merges nested span texts without duplication", func(t *testing.T) {
		t.Parallel()

		html := `<p><span class="selectionShareable" style="color: #993300;">` +
			`<span class="selectionShareable">A</span>` +
			`<span class="selectionShareable">B</span>` +
			`</span></p>`

		cleaner := goquery.NewCleaner(nil, goquery.MergeNested{Outer: outerSel, Inner: innerSel})

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "A B", text)
	})

	t.Run("leaves untangled spans alone", func(t *testing.T) {
		t.Parallel()

		html := `<p><span class="selectionShareable" style="color: #993300;">المادة الأولى</span></p>`

		cleaner := goquery.NewCleaner(nil, goquery.MergeNested{Outer: outerSel, Inner: innerSel})

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "المادة الأولى", text)
	})

	t.Run("removes empty nested spans", func(t *testing.T) {
		t.Parallel()

		html := `<p><span class="selectionShareable" style="color: #993300;">` +
			`نص خارجي` +
			`<span class="selectionShareable">  </span>` +
			`</span></p>`

		cleaner := goquery.NewCleaner(nil, goquery.MergeNested{Outer: outerSel, Inner: innerSel})

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "نص خارجي", text)
	})

	t.Run("surrounding paragraph text survives the merge", func(t *testing.T) {
		t.Parallel()

		html := `<p>قبل <span class="selectionShareable" style="color: #993300;">` +
			`<span class="selectionShareable">وسط</span>` +
			`</span> بعد</p>`

		cleaner := goquery.NewCleaner(nil, goquery.MergeNested{Outer: outerSel, Inner: innerSel})

		text, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "قبل وسط بعد", text)
	})
}

func TestRulesFromSpecs(t *testing.T) {
	t.Parallel()

	rules := goquery.RulesFromSpecs([]nezamdoc.RepairSpec{
		{Outer: "span.a", Inner: "span.b"},
		{Outer: "div.c", Inner: "div.d"},
	})

	require.Len(t, rules, 2)
	assert.Equal(t, goquery.MergeNested{Outer: "span.a", Inner: "span.b"}, rules[0])
	assert.Equal(t, goquery.MergeNested{Outer: "div.c", Inner: "div.d"}, rules[1])
}
