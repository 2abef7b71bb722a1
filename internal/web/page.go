package web

// indexHTML is the entire browser UI, embedded as a literal so the binary
// stays self-contained. It talks to /api/analyze and /api/demo and renders
// the JSON report client-side.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>rapport — connection depth</title>
<style>
  :root { --red: #d9534f; --yellow: #e8a33d; --green: #4f9d69; --ink: #2b2b2b; }
  body { font-family: ui-sans-serif, system-ui, sans-serif; color: var(--ink);
         max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
  h1 { font-size: 1.4rem; } h1 small { font-weight: normal; color: #777; }
  textarea { width: 100%; height: 14rem; font-family: ui-monospace, monospace;
             font-size: 0.9rem; padding: 0.6rem; box-sizing: border-box; }
  button { padding: 0.45rem 1.1rem; margin: 0.6rem 0.4rem 0.6rem 0; cursor: pointer; }
  .panel { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; margin-top: 1rem; }
  .overall { font-size: 1.2rem; margin-bottom: 0.8rem; }
  .dim { display: grid; grid-template-columns: 10rem 1fr 4rem; gap: 0.6rem;
         align-items: center; margin: 0.3rem 0; }
  .track { background: #eee; border-radius: 4px; height: 0.8rem; }
  .fill { height: 100%; border-radius: 4px; transition: width 0.3s; }
  .red { background: var(--red); } .yellow { background: var(--yellow); }
  .green { background: var(--green); }
  .badge { display: inline-block; padding: 0.1rem 0.6rem; border-radius: 1rem;
           color: #fff; font-size: 0.85rem; }
  .stats, .moments { color: #555; font-size: 0.9rem; margin-top: 0.8rem; }
  .moments h3 { font-size: 0.95rem; margin: 0.8rem 0 0.2rem; }
  .moments li { margin: 0.2rem 0; }
  .compare { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
  @media (max-width: 45rem) { .compare { grid-template-columns: 1fr; } }
</style>
</head>
<body>
<h1>rapport <small>— how deep does this conversation go?</small></h1>
<p>Paste a transcript with <code>Human:</code> / <code>AI:</code> style speaker
labels (also recognised: User, You, Assistant, Claude, GPT, Clio, Bot).</p>
<textarea id="input" placeholder="Human: How are you feeling today?&#10;AI: Honestly, a bit curious about this question..."></textarea>
<div>
  <button id="analyze">Analyze</button>
  <button id="demo">Compare demos</button>
</div>
<div id="out"></div>
<script>
(function () {
  'use strict';

  function bar(dim) {
    return '<div class="dim"><span>' + dim.title + '</span>' +
      '<div class="track"><div class="fill ' + dim.label + '" style="width:' + dim.value + '%"></div></div>' +
      '<span>' + dim.value + '/100</span></div>';
  }

  function esc(s) {
    return String(s).replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
  }

  function momentList(title, items) {
    if (!items || items.length === 0) { return ''; }
    var lis = items.map(function (m) {
      return '<li>turn ' + (m.turn + 1) + ': ' + m.note + ' — “' + esc(m.excerpt) + '”</li>';
    }).join('');
    return '<h3>' + title + '</h3><ul>' + lis + '</ul>';
  }

  function renderResult(res, heading) {
    var html = '<div class="panel">';
    if (heading) { html += '<h2>' + heading + '</h2>'; }
    html += '<div class="overall">Overall: <strong>' + res.overall.value + '/100</strong> ' +
      '<span class="badge ' + res.overall.label + '">' + res.overall.label + '</span></div>';
    html += res.dimensions.map(bar).join('');
    html += '<div class="stats">' + res.stats.turns + ' turns · ' +
      res.stats.human_words + ' human words · ' + res.stats.ai_words + ' AI words</div>';
    if (res.insights) {
      html += '<div class="moments">' +
        momentList('Highlights', res.insights.highlights) +
        momentList('AI experience moments', res.insights.ai_experience_moments) +
        momentList('Openings for deeper connection', res.insights.missed_opportunities) +
        '</div>';
    }
    return html + '</div>';
  }

  var out = document.getElementById('out');

  document.getElementById('analyze').addEventListener('click', function () {
    fetch('/api/analyze', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ transcript: document.getElementById('input').value })
    }).then(function (r) { return r.json(); })
      .then(function (res) { out.innerHTML = renderResult(res); })
      .catch(function (err) { out.textContent = 'analysis failed: ' + err; });
  });

  document.getElementById('demo').addEventListener('click', function () {
    fetch('/api/demo')
      .then(function (r) { return r.json(); })
      .then(function (res) {
        out.innerHTML = '<div class="compare">' +
          renderResult(res.low, 'Surface-level demo') +
          renderResult(res.high, 'Connected demo') + '</div>';
      })
      .catch(function (err) { out.textContent = 'demo failed: ' + err; });
  });
})();
</script>
</body>
</html>
`
